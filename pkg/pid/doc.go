// Package pid drives Metlink-style LED passenger information displays
// attached over a serial line.
//
// The display speaks an undocumented vendor protocol: each message is
// a fixed binary layout behind a marker prefix, CRC-16/X.25
// checksummed and wrapped in a DLE/STX/ETX byte-stuffed envelope.
// Every instruction is acknowledged with a short response frame, and
// the display clears itself after roughly a minute without traffic
// unless pinged. Pinger covers the pinging; Conn covers everything
// sent and received.
package pid
