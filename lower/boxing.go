package lower

import (
	"github.com/ava12/shapegen/internal/queue"
	"github.com/ava12/shapegen/model"
)

// box marks struct members and enum items that must be stored by reference
// so that no chain of by-value containment leads from a type back to itself.
//
// For every containment edge "origin embeds child" the parent graph is walked
// upwards from origin. Reaching an edge whose container is child means child
// embeds (transitively) origin, and that edge is boxed. The walk does not continue
// through child. Each edge is treated independently, so a cycle may get more
// than one boxed edge.
func (c *lowerContext) box(e error) error {
	if e != nil {
		return e
	}

	boxed := make(map[model.Edge]bool)
	var order []model.Edge
	collect := func(origin, child string) {
		for _, edge := range c.cycleEdges(origin, child) {
			if !boxed[edge] {
				boxed[edge] = true
				order = append(order, edge)
			}
		}
	}

	c.data.Structs.Scan(func(name string, s *model.Struct) bool {
		for _, mn := range s.Members {
			m := s.MemberMap[mn]
			if m.Kind != model.ShapePart || m.Negated {
				continue
			}

			child := c.data.TypeName(m.Key)
			if c.hasEdge(child, model.Edge{Container: name, Member: mn}) {
				collect(name, child)
			}
		}
		return true
	})

	c.data.Enums.Scan(func(name string, en *model.Enum) bool {
		for _, item := range en.Items {
			if c.hasEdge(item, model.Edge{Container: name, Member: item, InEnum: true}) {
				collect(name, item)
			}
		}
		return true
	})

	for _, edge := range order {
		if edge.InEnum {
			c.data.Enum(edge.Container).Boxed[edge.Member] = true
		} else {
			c.data.Struct(edge.Container).Member(edge.Member).Boxed = true
		}
		c.log.Debug("boxed", "container", edge.Container, "member", edge.Member, "enum", edge.InEnum)
	}
	return nil
}

func (c *lowerContext) hasEdge(child string, edge model.Edge) bool {
	_, has := c.data.Parents[child][edge]
	return has
}

// cycleEdges returns edges closing containment cycles from origin through child.
func (c *lowerContext) cycleEdges(origin, child string) []model.Edge {
	var result []model.Edge
	visited := map[string]bool{origin: true}
	stack := queue.New(origin)
	for !stack.IsEmpty() {
		name, _ := stack.Last()
		for _, edge := range c.data.Parents.Edges(name) {
			if edge.Container == child {
				result = append(result, edge)
				continue
			}

			if !visited[edge.Container] {
				visited[edge.Container] = true
				stack.Append(edge.Container)
			}
		}
	}
	return result
}
