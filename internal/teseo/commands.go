// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

package teseo

// Command pairs a Teseo request with the reply signature used to validate
// it. Request is the literal text written to the module, including the
// trailing "\r\n". Signature is the 4-byte sentence tag found at byte
// offset 3 of every data line in a valid reply, e.g. "GLL," in a sentence
// starting "$GPGLL,".
type Command struct {
	Request   string
	Signature string
}

// The NMEA report requests the Teseo answers on demand. See the Teseo
// Liv3f software manual, PSTMNMEAREQUEST: the first parameter is the
// message bitmask, the second the rate (0 = once).
var (
	Gll = Command{"$PSTMNMEAREQUEST,100000,0\r\n", "GLL,"}
	Gsv = Command{"$PSTMNMEAREQUEST,80000,0\r\n", "GSV,"}
	Gsa = Command{"$PSTMNMEAREQUEST,4,0\r\n", "GSA,"}
	Gga = Command{"$PSTMNMEAREQUEST,2,0\r\n", "GGA,"}
	Rmc = Command{"$PSTMNMEAREQUEST,40,0\r\n", "RMC,"}
	Vtg = Command{"$PSTMNMEAREQUEST,10,0\r\n", "VTG,"}
)

// Bring-up commands issued by Driver.Init. These are fire-and-forget
// except for the restart, whose echo ends the init wait loop.
const (
	cmdSuspend       = "$PSTMGPSSUSPEND\r\n"
	cmdClearMsgLUart = "$PSTMCFGMSGL,0,1,0,0\r\n"
	cmdClearMsgLI2c  = "$PSTMCFGMSGL,3,1,0,0\r\n"
	cmdDisableEcho   = "$PSTMSETPAR,1227,1,2\r\n"
	cmdRestart       = "$PSTMGPSRESTART\r\n"

	restartEcho = "$PSTMGPSRESTART"
)
