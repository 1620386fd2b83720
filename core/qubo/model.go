package qubo

// Task is a unit of work to be scheduled. Type carries the task category,
// optionally as a comma-separated list of skill keywords.
type Task struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Person is a candidate assignee. Names are unique within a problem.
type Person struct {
	Name string `json:"name"`
}

// Vars describes the decision-variable space of a problem instance. The
// binary variable (i, j, k) set to 1 means task i is performed by person j
// in slot k. Variables are addressed by a flat id, row-major over (i, j, k).
type Vars struct {
	Tasks  int
	People int
	Slots  int
}

// N returns the total number of variables.
func (v Vars) N() int { return v.Tasks * v.People * v.Slots }

// ID returns the flat id of variable (i, j, k).
func (v Vars) ID(i, j, k int) int { return (i*v.People+j)*v.Slots + k }

// Unpack returns the (task, person, slot) triple for a flat id.
func (v Vars) Unpack(id int) (i, j, k int) {
	k = id % v.Slots
	id /= v.Slots
	j = id % v.People
	i = id / v.People
	return i, j, k
}

// Pair is an unordered pair of distinct variable ids, normalized U < V.
type Pair struct {
	U, V int
}

// NewPair normalizes (a, b) into a Pair.
func NewPair(a, b int) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{U: a, V: b}
}

type neighbor struct {
	id   int
	bias float64
}

// Builder accumulates coefficient contributions for a quadratic binary
// model. All additions are commutative, so the order in which constraint
// terms are applied does not affect the frozen model.
type Builder struct {
	vars   Vars
	linear []float64
	quad   map[Pair]float64
	offset float64
}

// NewBuilder returns a Builder over the given variable space with all
// coefficients zero.
func NewBuilder(vars Vars) *Builder {
	return &Builder{
		vars:   vars,
		linear: make([]float64, vars.N()),
		quad:   make(map[Pair]float64),
	}
}

// AddLinear adds bias to the linear coefficient of variable id.
func (b *Builder) AddLinear(id int, bias float64) {
	b.linear[id] += bias
}

// AddQuadratic adds bias to the coefficient of the unordered pair (u, v).
// A self pair folds into the linear coefficient, since x*x == x for
// binary x.
func (b *Builder) AddQuadratic(u, v int, bias float64) {
	if u == v {
		b.linear[u] += bias
		return
	}
	b.quad[NewPair(u, v)] += bias
}

// AddOffset adds c to the constant offset.
func (b *Builder) AddOffset(c float64) {
	b.offset += c
}

// Freeze converts the accumulated coefficients into an immutable Model.
// The builder must not be used afterwards.
func (b *Builder) Freeze() *Model {
	m := &Model{
		vars:   b.vars,
		linear: b.linear,
		quad:   b.quad,
		offset: b.offset,
		adj:    make([][]neighbor, b.vars.N()),
	}
	for p, bias := range b.quad {
		m.adj[p.U] = append(m.adj[p.U], neighbor{id: p.V, bias: bias})
		m.adj[p.V] = append(m.adj[p.V], neighbor{id: p.U, bias: bias})
	}
	b.linear = nil
	b.quad = nil
	return m
}

// Model is a frozen quadratic binary model. Its energy function is
//
//	E(x) = offset + sum_v linear[v]*x[v] + sum_{u<v} quad[(u,v)]*x[u]*x[v]
//
// over binary x. Models are immutable and safe for concurrent reads.
type Model struct {
	vars   Vars
	linear []float64
	quad   map[Pair]float64
	adj    [][]neighbor
	offset float64
}

// Vars returns the variable space dimensions.
func (m *Model) Vars() Vars { return m.vars }

// NumVariables returns the number of binary variables.
func (m *Model) NumVariables() int { return m.vars.N() }

// NumInteractions returns the number of nonzero quadratic pairs.
func (m *Model) NumInteractions() int { return len(m.quad) }

// Offset returns the constant energy offset.
func (m *Model) Offset() float64 { return m.offset }

// Linear returns the linear coefficient of variable id.
func (m *Model) Linear(id int) float64 { return m.linear[id] }

// Quadratic returns the coefficient of the unordered pair (u, v), zero if
// the pair is absent.
func (m *Model) Quadratic(u, v int) float64 {
	return m.quad[NewPair(u, v)]
}

// Energy evaluates E(x) for a full variable assignment. len(x) must equal
// NumVariables.
func (m *Model) Energy(x []uint8) float64 {
	e := m.offset
	for id, bias := range m.linear {
		if x[id] == 1 {
			e += bias
		}
	}
	for p, bias := range m.quad {
		if x[p.U] == 1 && x[p.V] == 1 {
			e += bias
		}
	}
	return e
}

// FlipDelta returns the energy change from flipping variable id in x,
// using only the local field: the linear coefficient plus the quadratic
// couplings to currently active neighbors.
func (m *Model) FlipDelta(x []uint8, id int) float64 {
	field := m.linear[id]
	for _, nb := range m.adj[id] {
		if x[nb.id] == 1 {
			field += nb.bias
		}
	}
	if x[id] == 1 {
		return -field
	}
	return field
}

// MaxAbsField returns, over all variables, the largest possible magnitude
// of the local field: |linear| plus the sum of |bias| over incident
// couplings. It bounds the worst-case single-flip energy change and is
// used to derive a default annealing temperature range.
func (m *Model) MaxAbsField() float64 {
	max := 0.0
	for id, bias := range m.linear {
		f := abs(bias)
		for _, nb := range m.adj[id] {
			f += abs(nb.bias)
		}
		if f > max {
			max = f
		}
	}
	return max
}

// MinAbsNonzeroLinear returns the smallest nonzero |linear| coefficient,
// or zero when all linear coefficients are zero.
func (m *Model) MinAbsNonzeroLinear() float64 {
	min := 0.0
	for _, bias := range m.linear {
		a := abs(bias)
		if a == 0 {
			continue
		}
		if min == 0 || a < min {
			min = a
		}
	}
	return min
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
