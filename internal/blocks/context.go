package blocks

// Context carries scoped state through the recursive walk, passed by value
// so no call site can leak mutable global state into sibling subtrees (§9).
type Context struct {
	InTabPanel bool
	InNav      bool
	Depth      int
}

func (c Context) child(isNav bool) Context {
	return Context{
		InTabPanel: c.InTabPanel,
		InNav:      c.InNav || isNav,
		Depth:      c.Depth + 1,
	}
}
