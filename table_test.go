package sqlbuild_test

import (
	. "gopkg.in/check.v1"

	"github.com/canonical/sqlbuild"
)

type TableSuite struct{}

var _ = Suite(&TableSuite{})

func (s *TableSuite) TestNewTable(c *C) {
	t := sqlbuild.NewTable("orders")
	c.Assert(t.Name(), Equals, "orders")
	c.Assert(t.Instance(), Equals, "")
	c.Assert(t.String(), Equals, "orders")
	c.Assert(t.IsZero(), Equals, false)
}

func (s *TableSuite) TestZeroTable(c *C) {
	var t sqlbuild.Table
	c.Assert(t.IsZero(), Equals, true)
	c.Assert(t.Name(), Equals, "")
	c.Assert(t.Instance(), Equals, "")
}

func (s *TableSuite) TestAs(c *C) {
	t := sqlbuild.NewTable("orders")
	o := t.As("o")
	c.Assert(o.Name(), Equals, "orders")
	c.Assert(o.Instance(), Equals, "o")
	c.Assert(o.String(), Equals, "orders AS o")

	// As returns a new identity and leaves the original untouched.
	c.Assert(t.Instance(), Equals, "")
	c.Assert(o == t, Equals, false)
}

func (s *TableSuite) TestValueEquality(c *C) {
	// Tables are values. Two tables built independently from the same
	// name are the same table.
	c.Assert(sqlbuild.NewTable("orders") == sqlbuild.NewTable("orders"), Equals, true)
	c.Assert(sqlbuild.NewTable("orders").As("o") == sqlbuild.NewTable("orders").As("o"), Equals, true)
	c.Assert(sqlbuild.NewTable("orders") == sqlbuild.NewTable("invoices"), Equals, false)
	c.Assert(sqlbuild.NewTable("orders").As("a") == sqlbuild.NewTable("orders").As("b"), Equals, false)
}

func (s *TableSuite) TestTableSet(c *C) {
	a := sqlbuild.NewTable("a")
	b := sqlbuild.NewTable("b")
	a2 := a.As("a2")

	ts := sqlbuild.NewTableSet()
	c.Assert(ts.Len(), Equals, 0)
	c.Assert(ts.Contains(a), Equals, false)

	ts.Add(a)
	ts.Add(a)
	ts.Add(a2)
	ts.Add(b)

	// Adding a table twice has no effect, and an aliased instance is
	// distinct from its base table.
	c.Assert(ts.Len(), Equals, 3)
	c.Assert(ts.Contains(a), Equals, true)
	c.Assert(ts.Contains(a2), Equals, true)
	c.Assert(ts.Contains(sqlbuild.NewTable("c")), Equals, false)
}

func (s *TableSuite) TestTableSetSorted(c *C) {
	ts := sqlbuild.NewTableSet()
	ts.Add(sqlbuild.NewTable("b"))
	ts.Add(sqlbuild.NewTable("a").As("x"))
	ts.Add(sqlbuild.NewTable("a"))

	// Sorted orders by name, then by instance.
	c.Assert(ts.Sorted(), DeepEquals, []sqlbuild.Table{
		sqlbuild.NewTable("a"),
		sqlbuild.NewTable("a").As("x"),
		sqlbuild.NewTable("b"),
	})
}
