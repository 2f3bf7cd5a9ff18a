package sqlbuild_test

import (
	"fmt"
	"time"

	. "gopkg.in/check.v1"

	"github.com/canonical/sqlbuild"
)

type TypedSuite struct{}

var _ = Suite(&TypedSuite{})

func (s *TypedSuite) TestValueEncoding(c *C) {
	var tests = []struct {
		summary string
		field   sqlbuild.Field
		want    string
	}{{
		summary: "integer",
		field:   sqlbuild.Integer.Value(-42),
		want:    "-42",
	}, {
		summary: "float",
		field:   sqlbuild.Float.Value(2.5),
		want:    "2.5",
	}, {
		summary: "text",
		field:   sqlbuild.Text.Value("plain"),
		want:    "'plain'",
	}, {
		summary: "text with quotes",
		field:   sqlbuild.Text.Value("it's"),
		want:    "'it''s'",
	}, {
		summary: "boolean true",
		field:   sqlbuild.Boolean.Value(true),
		want:    "TRUE",
	}, {
		summary: "boolean false",
		field:   sqlbuild.Boolean.Value(false),
		want:    "FALSE",
	}, {
		summary: "timestamp",
		field:   sqlbuild.Timestamp.Value(time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)),
		want:    "'2026-08-25 10:30:00'",
	}, {
		summary: "date",
		field:   sqlbuild.Date.Value(time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC)),
		want:    "'2026-08-25'",
	}, {
		summary: "blob",
		field:   sqlbuild.Blob.Value([]byte{0x01, 0xAB}),
		want:    "X'01AB'",
	}, {
		summary: "empty blob",
		field:   sqlbuild.Blob.Value(nil),
		want:    "X''",
	}, {
		summary: "null",
		field:   sqlbuild.Text.Null(),
		want:    "NULL",
	}, {
		summary: "raw fragment",
		field:   sqlbuild.Integer.Raw("last_insert_rowid()"),
		want:    "last_insert_rowid()",
	}}

	for _, t := range tests {
		c.Assert(sqlbuild.Render(t.field, true), Equals, t.want, Commentf("\ntest %q failed", t.summary))
	}
}

func (s *TypedSuite) TestTimestampNormalisesToUTC(c *C) {
	loc := time.FixedZone("CEST", 2*60*60)
	f := sqlbuild.Timestamp.Value(time.Date(2026, 8, 25, 12, 30, 0, 0, loc))
	c.Assert(sqlbuild.Render(f, true), Equals, "'2026-08-25 10:30:00'")
}

func (s *TypedSuite) TestComparisons(c *C) {
	var tests = []struct {
		summary string
		cond    sqlbuild.Criterion
		want    string
	}{{
		summary: "eq value",
		cond:    peopleID.EqVal(1),
		want:    "people.id = 1",
	}, {
		summary: "ne value",
		cond:    peopleID.NeVal(1),
		want:    "people.id <> 1",
	}, {
		summary: "lt value",
		cond:    peopleID.LtVal(1),
		want:    "people.id < 1",
	}, {
		summary: "le value",
		cond:    peopleID.LeVal(1),
		want:    "people.id <= 1",
	}, {
		summary: "gt value",
		cond:    peopleID.GtVal(1),
		want:    "people.id > 1",
	}, {
		summary: "ge value",
		cond:    peopleID.GeVal(1),
		want:    "people.id >= 1",
	}, {
		summary: "eq field",
		cond:    peopleTeam.Eq(teamsName),
		want:    "people.team = teams.name",
	}, {
		summary: "ge field",
		cond:    peopleSalary.Ge(peopleID),
		want:    "people.salary >= people.id",
	}, {
		summary: "in integers",
		cond:    peopleID.In(1, 2, 3),
		want:    "people.id IN (1, 2, 3)",
	}, {
		summary: "in strings",
		cond:    peopleTeam.In("a", "b"),
		want:    "people.team IN ('a', 'b')",
	}}

	for _, t := range tests {
		c.Assert(t.cond.Render(true), Equals, t.want, Commentf("\ntest %q failed", t.summary))
	}

	// In of no values is the empty condition, so an unconstrained
	// membership test disappears from the statement.
	c.Assert(peopleID.In().IsEmpty(), Equals, true)
}

func (s *TypedSuite) TestAssignments(c *C) {
	c.Assert(peopleName.Set("Ann").Render(true), Equals, "name = 'Ann'")
	c.Assert(peopleTeam.SetField(teamsName).Render(true), Equals, "team = teams.name")
	c.Assert(peopleTeam.SetNull().Render(true), Equals, "team = NULL")
}

func (s *TypedSuite) TestCustomType(c *C) {
	// A type is just an encoder. Everything built from it renders
	// through that encoder.
	money := sqlbuild.Type[int64]{Encode: func(v int64) string {
		return fmt.Sprintf("%d.%02d", v/100, v%100)
	}}

	price := money.Column(people, "salary")
	c.Assert(price.EqVal(12345).Render(true), Equals, "people.salary = 123.45")
	c.Assert(price.In(99, 100).Render(true), Equals, "people.salary IN (0.99, 1.00)")
	c.Assert(price.Set(250).Render(true), Equals, "salary = 2.50")
}

func (s *TypedSuite) TestConstructors(c *C) {
	trim := sqlbuild.Text.Apply("trim(", ")")
	c.Assert(sqlbuild.Render(trim(peopleName), true), Equals, "trim(people.name)")

	median := sqlbuild.Float.Aggregate("median(", ")")
	c.Assert(sqlbuild.Render(median(peopleSalary), true), Equals, "median(people.salary)")
	var group sqlbuild.FieldList
	var agg bool
	median(peopleSalary).SplitAggregate(&group, &agg)
	c.Assert(agg, Equals, true)
	c.Assert(group, HasLen, 0)

	now := sqlbuild.Timestamp.Func("datetime('now')")
	c.Assert(sqlbuild.Render(now(), true), Equals, "datetime('now')")

	modulo := sqlbuild.Integer.Operator("%")
	c.Assert(sqlbuild.Render(modulo(peopleID, sqlbuild.Integer.Value(10)), true), Equals, "people.id % 10")
}

func (s *TypedSuite) TestScalarOperator(c *C) {
	plusInterval := sqlbuild.ScalarOperator[time.Time](sqlbuild.Text, "+", "interval ", "")
	created := sqlbuild.Timestamp.Column(people, "created")

	f := plusInterval(created, "2 days")
	c.Assert(sqlbuild.Render(f, true), Equals, "people.created + interval '2 days'")

	// The result keeps the field's own type, so comparing it against a
	// value goes through the timestamp encoder.
	cond := f.GtVal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	c.Assert(cond.Render(true), Equals, "people.created + interval '2 days' > '2026-01-01 00:00:00'")
}
