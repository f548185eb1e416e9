package cluster

// kdtree - статическое плоское kd-дерево над срезом записей уровня.
// Дерево неявное: записи переупорядочиваются на месте так, что середина
// каждого диапазона является разделяющим узлом, а позиции в срезе служат
// идентификаторами записей.
type kdtree struct {
	entries  []entry
	nodeSize int
}

// newKDTree строит дерево, сортируя записи на месте
func newKDTree(entries []entry, nodeSize int) *kdtree {
	t := &kdtree{entries: entries, nodeSize: nodeSize}
	if len(entries) > 0 {
		t.sortKD(0, len(entries)-1, 0)
	}
	return t
}

func (t *kdtree) sortKD(left, right, axis int) {
	if right-left <= t.nodeSize {
		return
	}

	m := (left + right) >> 1
	t.selectKD(m, left, right, axis)

	t.sortKD(left, m-1, 1-axis)
	t.sortKD(m+1, right, 1-axis)
}

// selectKD переставляет записи так, чтобы k-я по заданной оси
// оказалась на своей позиции (частичный quickselect по Хоару)
func (t *kdtree) selectKD(k, left, right, axis int) {
	for right > left {
		pivot := t.axisKey(k, axis)
		i := left
		j := right

		t.swap(left, k)
		if t.axisKey(right, axis) > pivot {
			t.swap(left, right)
		}

		for i < j {
			t.swap(i, j)
			i++
			j--
			for t.axisKey(i, axis) < pivot {
				i++
			}
			for t.axisKey(j, axis) > pivot {
				j--
			}
		}

		if t.axisKey(left, axis) == pivot {
			t.swap(left, j)
		} else {
			j++
			t.swap(j, right)
		}

		if j <= k {
			left = j + 1
		}
		if k <= j {
			right = j - 1
		}
	}
}

func (t *kdtree) axisKey(i, axis int) float64 {
	if axis == 0 {
		return t.entries[i].x
	}
	return t.entries[i].y
}

func (t *kdtree) swap(i, j int) {
	t.entries[i], t.entries[j] = t.entries[j], t.entries[i]
}

type searchRange struct {
	left  int
	right int
	axis  int
}

// Range возвращает позиции записей внутри прямоугольника.
// Порядок обхода фиксирован, поэтому результат детерминирован.
func (t *kdtree) Range(minX, minY, maxX, maxY float64) []int {
	if len(t.entries) == 0 {
		return nil
	}

	var result []int
	stack := []searchRange{{left: 0, right: len(t.entries) - 1, axis: 0}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.right-s.left <= t.nodeSize {
			for i := s.left; i <= s.right; i++ {
				e := t.entries[i]
				if e.x >= minX && e.x <= maxX && e.y >= minY && e.y <= maxY {
					result = append(result, i)
				}
			}
			continue
		}

		m := (s.left + s.right) >> 1
		e := t.entries[m]
		if e.x >= minX && e.x <= maxX && e.y >= minY && e.y <= maxY {
			result = append(result, m)
		}

		if (s.axis == 0 && minX <= e.x) || (s.axis == 1 && minY <= e.y) {
			stack = append(stack, searchRange{left: s.left, right: m - 1, axis: 1 - s.axis})
		}
		if (s.axis == 0 && maxX >= e.x) || (s.axis == 1 && maxY >= e.y) {
			stack = append(stack, searchRange{left: m + 1, right: s.right, axis: 1 - s.axis})
		}
	}

	return result
}

// Within возвращает позиции записей внутри круга заданного радиуса
func (t *kdtree) Within(x, y, r float64) []int {
	if len(t.entries) == 0 {
		return nil
	}

	r2 := r * r
	var result []int
	stack := []searchRange{{left: 0, right: len(t.entries) - 1, axis: 0}}

	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.right-s.left <= t.nodeSize {
			for i := s.left; i <= s.right; i++ {
				e := t.entries[i]
				if sqDist(e.x, e.y, x, y) <= r2 {
					result = append(result, i)
				}
			}
			continue
		}

		m := (s.left + s.right) >> 1
		e := t.entries[m]
		if sqDist(e.x, e.y, x, y) <= r2 {
			result = append(result, m)
		}

		if (s.axis == 0 && x-r <= e.x) || (s.axis == 1 && y-r <= e.y) {
			stack = append(stack, searchRange{left: s.left, right: m - 1, axis: 1 - s.axis})
		}
		if (s.axis == 0 && x+r >= e.x) || (s.axis == 1 && y+r >= e.y) {
			stack = append(stack, searchRange{left: m + 1, right: s.right, axis: 1 - s.axis})
		}
	}

	return result
}

func sqDist(ax, ay, bx, by float64) float64 {
	dx := ax - bx
	dy := ay - by
	return dx*dx + dy*dy
}
