// Copyright 2021 Clayton Craft <clayton@craftyguy.net>
// SPDX-License-Identifier: GPL-3.0-or-later

package teseo

import (
	"strings"
	"testing"
	"time"
)

// fakeBus scripts the transport side of a driver: writes are recorded,
// reads are served from a canned list (and come back empty once the list
// is exhausted, like a quiet bus would).
type fakeBus struct {
	writes []string
	reads  []string
	resets int
}

func (b *fakeBus) write(s string) {
	b.writes = append(b.writes, s)
}

func (b *fakeBus) read() string {
	if len(b.reads) == 0 {
		return ""
	}
	s := b.reads[0]
	b.reads = b.reads[1:]
	return s
}

func (b *fakeBus) reset() {
	b.resets++
}

func (b *fakeBus) bind(d *Driver) {
	d.Writer().Set(b.write)
	d.Reader().Set(b.read)
	d.Resetter().Set(b.reset)
}

func TestAskGLL(t *testing.T) {
	bus := &fakeBus{
		reads: []string{"$GPGLL,4916.45,N,12311.12,W*50\r\n$PSTMNMEAREQUEST,100000,0*"},
	}
	gps := New()
	bus.bind(gps)

	sentence, valid := gps.AskGLL()
	if !valid {
		t.Error("reply not valid")
	}
	if sentence != "$GPGLL,4916.45,N,12311.12,W*50\r\n" {
		t.Errorf("unexpected sentence: %q", sentence)
	}
	if len(bus.writes) != 1 || bus.writes[0] != Gll.Request {
		t.Errorf("expected single write of %q, got: %q", Gll.Request, bus.writes)
	}
}

func TestAskSingleMismatch(t *testing.T) {
	// device answered a GLL request with RMC data
	bus := &fakeBus{
		reads: []string{"$GPRMC,225446,A,4916.45,N*68\r\n$PSTMNMEAREQUEST,40,0*"},
	}
	gps := New()
	bus.bind(gps)

	sentence, valid := gps.AskGLL()
	if valid {
		t.Error("expected invalid reply")
	}
	if sentence != "" {
		t.Errorf("expected empty sentence, got: %q", sentence)
	}
}

func TestAskGSV(t *testing.T) {
	reply := "$GPGSV,3,1,11,18,87,050,48*77\r\n" +
		"$GPGSV,3,2,11,14,25,170,44*79\r\n" +
		"$GPGSV,3,3,11,32,04,344,39*44\r\n" +
		"$PSTMNMEAREQUEST,80000,0*"
	bus := &fakeBus{reads: []string{reply}}
	gps := New()
	bus.bind(gps)

	replies := make([]string, 7)
	count, valid := gps.AskGSV(replies)
	if !valid {
		t.Error("reply not valid")
	}
	if count != 3 {
		t.Errorf("count expected: 3, got: %d", count)
	}
	if replies[0] != "$GPGSV,3,1,11,18,87,050,48*77\r\n" {
		t.Errorf("unexpected first sentence: %q", replies[0])
	}
	if len(bus.writes) != 1 || bus.writes[0] != Gsv.Request {
		t.Errorf("expected single write of %q, got: %q", Gsv.Request, bus.writes)
	}
}

func TestInitSequence(t *testing.T) {
	bus := &fakeBus{
		reads: []string{
			"$GPTXT,boot noise*00",
			"$PSTMGPSRESTART",
		},
	}
	gps := New()
	bus.bind(gps)

	gps.Init()

	if bus.resets != 1 {
		t.Errorf("resets expected: 1, got: %d", bus.resets)
	}
	expected := []string{
		"$PSTMGPSSUSPEND\r\n",
		"$PSTMCFGMSGL,0,1,0,0\r\n",
		"$PSTMCFGMSGL,3,1,0,0\r\n",
		"$PSTMSETPAR,1227,1,2\r\n",
		"$PSTMGPSRESTART\r\n",
	}
	if len(bus.writes) != len(expected) {
		t.Fatalf("writes expected: %q, got: %q", expected, bus.writes)
	}
	for i, w := range expected {
		if bus.writes[i] != w {
			t.Errorf("write %d expected: %q, got: %q", i, w, bus.writes[i])
		}
	}
	if len(bus.reads) != 0 {
		t.Errorf("restart wait ended early, unread replies: %q", bus.reads)
	}
}

// An empty read must end the restart wait; a quiet transport means the
// module has nothing more to say. (Heuristic verified on I2C only, see
// Init.)
func TestInitEmptyReadTerminates(t *testing.T) {
	bus := &fakeBus{} // every read returns ""
	gps := New()
	bus.bind(gps)

	done := make(chan struct{})
	go func() {
		gps.Init()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Init hung on a quiet transport")
	}
}

func TestInitUnarmedResetter(t *testing.T) {
	bus := &fakeBus{}
	gps := New()
	gps.Writer().Set(bus.write)
	gps.Reader().Set(bus.read)
	// resetter left unarmed

	defer func() {
		if recover() == nil {
			t.Error("expected panic for unarmed resetter")
		}
		if len(bus.writes) != 0 {
			t.Errorf("writes happened before the precondition check: %q", bus.writes)
		}
	}()
	gps.Init()
}

func TestAskUnarmedWriter(t *testing.T) {
	gps := New()

	defer func() {
		if recover() == nil {
			t.Error("expected panic for unarmed writer")
		}
	}()
	gps.AskGLL()
}

func TestRequestStrings(t *testing.T) {
	// the wire strings are a device contract, pin them exactly
	tables := []struct {
		cmd       Command
		request   string
		signature string
	}{
		{Gll, "$PSTMNMEAREQUEST,100000,0\r\n", "GLL,"},
		{Gsv, "$PSTMNMEAREQUEST,80000,0\r\n", "GSV,"},
		{Gsa, "$PSTMNMEAREQUEST,4,0\r\n", "GSA,"},
		{Gga, "$PSTMNMEAREQUEST,2,0\r\n", "GGA,"},
		{Rmc, "$PSTMNMEAREQUEST,40,0\r\n", "RMC,"},
		{Vtg, "$PSTMNMEAREQUEST,10,0\r\n", "VTG,"},
	}

	for _, table := range tables {
		if table.cmd.Request != table.request {
			t.Errorf("request expected: %q, got: %q", table.request, table.cmd.Request)
		}
		if table.cmd.Signature != table.signature {
			t.Errorf("signature expected: %q, got: %q", table.signature, table.cmd.Signature)
		}
		if !strings.Contains(table.cmd.Request, ",") {
			t.Errorf("request %q has no parameters", table.cmd.Request)
		}
	}
}
