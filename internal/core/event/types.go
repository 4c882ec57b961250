package event

import "github.com/agentgrid/gridindex/internal/core/ecs"

// Membership events emitted by world.Grid.

// CellEntered fires when an actor starts overlapping a cell.
type CellEntered struct {
	Actor ecs.EntityID
	Cell  int
}

// CellExited fires when an actor stops overlapping a cell, including on detach.
type CellExited struct {
	Actor ecs.EntityID
	Cell  int
}

// GridLeft fires when an actor's circle no longer overlaps the grid at all.
type GridLeft struct {
	Actor ecs.EntityID
}

// GridEntered fires when an actor that was off the grid overlaps it again.
type GridEntered struct {
	Actor ecs.EntityID
}
