// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

package teseo

import "strings"

// Reply sentences are separated by "\r\n"; the trailing status line is the
// remainder of the buffer and carries no separator of its own.
const lineSep = "\r\n"

// ParseReply splits one raw reply buffer into its data sentences and
// validates it against the command that produced it.
//
// out is caller-owned storage and doubles as the capacity limit: at most
// len(out) data sentences are extracted, and the parser never grows it.
// Each stored sentence keeps its trailing separator. Entries of out at
// index >= count are reset to "" so stale text from a reused buffer never
// leaks through.
//
// A data sentence is valid if it is at least 7 bytes long and carries
// c.Signature at byte offset 3. One malformed sentence invalidates the
// whole reply: count is reset to 0 and valid is false, no matter how many
// sentences before or after it were good.
//
// The final segment of the buffer is the status line: either a tail with
// no separator at all, or a separator-terminated segment with nothing
// after it. The reply is valid iff that line starts with c.Request
// stripped of its trailing "\r\n". Status detection is not bounded by
// len(out), but the data scan is: if another data sentence turns up once
// out is full, scanning stops with the partial count, the excess is
// discarded and the reply stays invalid.
func (c Command) ParseReply(reply string, out []string) (count int, valid bool) {
	status := c.Request[:len(c.Request)-len(lineSep)]

	cursor := 0
	for {
		rel := strings.Index(reply[cursor:], lineSep)
		if rel < 0 {
			valid = strings.HasPrefix(reply[cursor:], status)
			break
		}
		end := cursor + rel + len(lineSep)
		if end == len(reply) {
			// Separator-terminated tail with nothing after it: some
			// transports tack "\r\n" onto the status line too.
			valid = strings.HasPrefix(reply[cursor:], status)
			break
		}
		if count == len(out) {
			break
		}
		line := reply[cursor:end]
		if len(line) < 7 || !strings.HasPrefix(line[3:], c.Signature) {
			count = 0
			break
		}
		out[count] = line
		count++
		cursor = end
	}

	for i := count; i < len(out); i++ {
		out[i] = ""
	}
	return count, valid
}
