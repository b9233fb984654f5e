/*
Package region provides read access to region files (also known as anvil
files) storing compressed chunk data of a 32x32 chunk area.

File layout:

	[0, 4096)      location table: 1024 big-endian 4-byte entries
	[4096, 8192)   timestamp table (ignored)
	[8192, ...)    records aligned to 4096-byte sectors

Location entry is a 3-byte sector offset of the record followed by a 1-byte
sector count. Entry of the cell (x, z) is stored at 4*((x&31) + (z&31)*32).
Zero offset means the cell has no record.

Each record starts with a 4-byte big-endian length covering the following
1-byte compression method and the compressed payload.
*/
package region
