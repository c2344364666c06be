package maze

// step is a frontier entry: the cell reached, where it was reached from and
// the direction taken.
type step struct {
	prev *Cell
	cell *Cell
	dir  Direction
}

// Solve returns the shortest sequence of directions leading the player to
// the goal. Among equally short routes the one preferring up, then right,
// then down, then left at the first difference wins. The result is empty
// when the player already stands on the goal or the goal cannot be reached.
func (b *Board) Solve() []Direction {
	queue := []step{{cell: b.player}}
	cameFrom := make(map[*Cell]step)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, seen := cameFrom[cur.cell]; seen {
			continue
		}
		cameFrom[cur.cell] = cur
		if cur.cell == b.goal {
			break
		}

		for dir, n := range cur.cell.Around() {
			if n == nil || !n.IsPath() {
				continue
			}
			if _, seen := cameFrom[n]; seen {
				continue
			}
			queue = append(queue, step{prev: cur.cell, cell: n, dir: Direction(dir)})
		}
	}

	dirs := []Direction{}
	if _, reached := cameFrom[b.goal]; !reached {
		return dirs
	}
	for s := cameFrom[b.goal]; s.prev != nil; s = cameFrom[s.prev] {
		dirs = append(dirs, s.dir)
	}
	for i, j := 0, len(dirs)-1; i < j; i, j = i+1, j-1 {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}
