// Package transfer moves bytes from a transport stream to local
// storage in bounded chunks, and verifies the integrity of completed
// files against an expected digest.
package transfer
