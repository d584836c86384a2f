// Package regmap implements a cached register file for byte-addressed codec
// control registers.
//
// A Store sits between a driver and the Bus that reaches the chip. Reads of
// non-volatile registers are served from the cache; writes go through to the
// bus unless the store is cache-only, in which case they are staged in the
// cache, the cache is marked dirty, and the next Sync flushes them. Volatile registers (status, clip detection)
// always reach hardware. ScopedBypass runs a function with the cache skipped
// entirely, for accesses whose result must neither come from nor land in the
// cache, such as a self-clearing reset command.
//
// UpdateBits and UpdateFields are read-modify-write operations that hold the
// store lock across both halves, so no other access interleaves with them.
package regmap
