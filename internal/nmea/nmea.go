// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

package nmea

import (
	"fmt"
	"strings"
)

type Sentence struct {
	Type string
	Data []string
}

func checksum(s string) string {
	var sum uint8
	for i := 0; i < len(s); i++ {
		sum ^= s[i]
	}

	return fmt.Sprintf("%02X", sum)
}

func (s Sentence) String() string {
	sentence := s.Type
	for _, d := range s.Data {
		sentence = fmt.Sprintf("%s,%s", sentence, d)
	}

	if len(s.Data) == 0 {
		// always make sure the type is followed by a comma if there is no data
		sentence = fmt.Sprintf("%s,", sentence)
	}

	str := fmt.Sprintf("$%s*%s", sentence, checksum(sentence))
	return str
}

func (s Sentence) Bytes() []byte {
	return []byte(s.String())
}

// Parse splits one sentence back into its type and fields. line may carry
// a trailing "\r\n" and an optional "*XX" checksum; when a checksum is
// present it is verified. The fields themselves are returned verbatim,
// Parse does no semantic decoding.
func Parse(line string) (s Sentence, err error) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, "$") {
		err = fmt.Errorf("nmea.Parse: %q does not start with '$'", line)
		return
	}
	body := line[1:]

	if i := strings.LastIndex(body, "*"); i >= 0 {
		sum := body[i+1:]
		body = body[:i]
		if sum != "" && sum != checksum(body) {
			err = fmt.Errorf("nmea.Parse: %q checksum mismatch: have %q, want %q",
				line, sum, checksum(body))
			return
		}
	}

	fields := strings.Split(body, ",")
	s.Type = fields[0]
	if s.Type == "" {
		err = fmt.Errorf("nmea.Parse: %q has an empty sentence type", line)
		return
	}
	s.Data = fields[1:]
	return
}

// Verify reports whether line is a well-formed sentence with a matching
// checksum (or no checksum at all).
func Verify(line string) bool {
	_, err := Parse(line)
	return err == nil
}
