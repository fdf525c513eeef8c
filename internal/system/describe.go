package system

import (
	"strings"

	"github.com/l1jgo/blueprint/internal/component"
	"github.com/l1jgo/blueprint/internal/core/ecs"
)

// DescribeEntity returns the text of every active Describable on e, in
// component order. Concealed entities describe nothing.
func DescribeEntity(e *ecs.Entity) []string {
	if concealed(e) {
		return nil
	}
	var lines []string
	for _, d := range ecs.Filter[*component.Describable](e) {
		if !d.IsActive() {
			continue
		}
		if text := d.Describe(); text != "" {
			lines = append(lines, text)
		}
	}
	return lines
}

// DescribeEntities joins the descriptions of every entity in the world, one
// line each, in entity creation order.
func DescribeEntities(w *ecs.World) string {
	var lines []string
	for _, e := range w.Entities() {
		lines = append(lines, DescribeEntity(e)...)
	}
	return strings.Join(lines, "\n")
}

func concealed(e *ecs.Entity) bool {
	for _, c := range ecs.Filter[component.Concealer](e) {
		if c.Conceals() {
			return true
		}
	}
	return false
}
