// Package services implements the driving ports on top of the driven ports.
//
// SyncService is the batch job itself: mint a storage token, read the
// database watermark, list modified files and write one entry per file with
// a fixed pause between writes. It runs on a single goroutine and stops at
// the first error.
package services
