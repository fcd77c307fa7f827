package hal

import (
	"reflect"
	"testing"
	"time"
)

func TestVirtualTimerFiresInDueOrder(t *testing.T) {
	vt := NewVirtualTimer()
	var got []string
	vt.Attach(time.Second, func() { got = append(got, "tick") })
	vt.Attach(400*time.Millisecond, func() { got = append(got, "fast") })

	vt.Advance(time.Second)
	want := []string{"fast", "fast", "tick"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("fired %v, want %v", got, want)
	}
	if vt.Now() != time.Second {
		t.Fatalf("Now = %v", vt.Now())
	}

	got = nil
	vt.Advance(200 * time.Millisecond)
	if !reflect.DeepEqual(got, []string{"fast"}) {
		t.Fatalf("fired %v", got)
	}
}

func TestVirtualTimerSameInstantUsesAttachOrder(t *testing.T) {
	vt := NewVirtualTimer()
	var got []int
	vt.Attach(2*time.Millisecond, func() { got = append(got, 2) })
	vt.Attach(time.Millisecond, func() { got = append(got, 1) })

	vt.Advance(2 * time.Millisecond)
	if !reflect.DeepEqual(got, []int{1, 2, 1}) {
		t.Fatalf("fired %v", got)
	}
}

func TestVirtualTimerDetach(t *testing.T) {
	vt := NewVirtualTimer()
	n := 0
	detach := vt.Attach(time.Millisecond, func() { n++ })
	vt.Advance(5 * time.Millisecond)
	detach()
	vt.Advance(5 * time.Millisecond)
	if n != 5 {
		t.Fatalf("fired %d times, want 5", n)
	}
}

func TestHostTimerRunsAndStops(t *testing.T) {
	ht := newHostTimer()
	fired := make(chan struct{}, 16)
	detach := ht.Attach(time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never ran")
	}
	detach()
	detach()
}
