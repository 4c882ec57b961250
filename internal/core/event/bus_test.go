package event

import (
	"testing"

	"github.com/agentgrid/gridindex/internal/core/ecs"
)

func TestBusDeliversAfterSwap(t *testing.T) {
	b := NewBus()
	var got []CellEntered
	Subscribe(b, func(ev CellEntered) { got = append(got, ev) })

	Emit(b, CellEntered{Actor: ecs.NewEntityID(1, 0), Cell: 4})
	Emit(b, CellEntered{Actor: ecs.NewEntityID(1, 0), Cell: 5})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("delivered before swap: %v", got)
	}

	b.SwapBuffers()
	if b.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", b.Pending())
	}
	b.DispatchAll()
	if len(got) != 2 || got[0].Cell != 4 || got[1].Cell != 5 {
		t.Fatalf("got %v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 2 {
		t.Errorf("events redelivered: %v", got)
	}
}

func TestBusSeparatesTypes(t *testing.T) {
	b := NewBus()
	entered, exited := 0, 0
	Subscribe(b, func(CellEntered) { entered++ })
	Subscribe(b, func(CellExited) { exited++ })

	Emit(b, CellExited{Cell: 1})
	b.SwapBuffers()
	b.DispatchAll()
	if entered != 0 || exited != 1 {
		t.Errorf("entered=%d exited=%d", entered, exited)
	}
}

func TestEmitOnNilBus(t *testing.T) {
	var b *Bus
	Emit(b, GridLeft{}) // must not panic
}
