package sqlbuild_test

import (
	. "gopkg.in/check.v1"

	"github.com/canonical/sqlbuild"
)

type StatementSuite struct{}

var _ = Suite(&StatementSuite{})

func (s *StatementSuite) TestSelectSQL(c *C) {
	m := people.As("m")
	mName := sqlbuild.Text.Column(m, "name")

	var tests = []struct {
		summary string
		stmt    sqlbuild.Builder
		want    string
	}{{
		summary: "fields only",
		stmt:    sqlbuild.Select(sqlbuild.Text.Value("test")),
		want:    "SELECT 'test'",
	}, {
		summary: "explicit from",
		stmt:    sqlbuild.Select(peopleName).From(people),
		want:    "SELECT people.name FROM people",
	}, {
		summary: "auto-completed from",
		stmt:    sqlbuild.Select(peopleName).AutoComplete(),
		want:    "SELECT people.name FROM people",
	}, {
		summary: "auto-completed from with two tables",
		stmt: sqlbuild.Select(peopleName, teamsCity).
			Where(peopleTeam.Eq(teamsName)).
			AutoComplete(),
		want: "SELECT people.name, teams.city FROM people, teams WHERE people.team = teams.name",
	}, {
		summary: "auto-completed from with aliased table",
		stmt:    sqlbuild.Select(mName).AutoComplete(),
		want:    "SELECT m.name FROM people AS m",
	}, {
		summary: "self join",
		stmt: sqlbuild.Select(peopleName, mName).
			Where(peopleTeam.Eq(sqlbuild.Text.Column(m, "team"))).
			AutoComplete(),
		want: "SELECT people.name, m.name FROM people, people AS m WHERE people.team = m.team",
	}, {
		summary: "where conditions accumulate with and",
		stmt: sqlbuild.Select(peopleName).
			From(people).
			Where(peopleActive.EqVal(true)).
			Where(peopleSalary.GtVal(1000)),
		want: "SELECT people.name FROM people WHERE people.active = TRUE AND people.salary > 1000",
	}, {
		summary: "empty where stays silent",
		stmt:    sqlbuild.Select(peopleName).From(people).Where(sqlbuild.And()),
		want:    "SELECT people.name FROM people",
	}, {
		summary: "group having order",
		stmt: sqlbuild.Select(peopleTeam, sqlbuild.Count(peopleID)).
			Where(peopleActive.EqVal(true)).
			Having(sqlbuild.Count(peopleID).GtVal(1)).
			OrderBy(sqlbuild.Desc(sqlbuild.Count(peopleID))).
			AutoComplete(),
		want: "SELECT people.team, count(people.id) FROM people" +
			" WHERE people.active = TRUE" +
			" GROUP BY people.team" +
			" HAVING count(people.id) > 1" +
			" ORDER BY count(people.id) DESC",
	}, {
		summary: "distinct with limit and offset",
		stmt: sqlbuild.Select(peopleTeam).
			Distinct().
			OrderBy(peopleTeam).
			Limit(10).
			Offset(5).
			AutoComplete(),
		want: "SELECT DISTINCT people.team FROM people ORDER BY people.team LIMIT 10 OFFSET 5",
	}, {
		summary: "limit zero is rendered",
		stmt:    sqlbuild.Select(peopleName).From(people).Limit(0),
		want:    "SELECT people.name FROM people LIMIT 0",
	}, {
		summary: "offset zero is omitted",
		stmt:    sqlbuild.Select(peopleName).From(people).Offset(0),
		want:    "SELECT people.name FROM people",
	}, {
		summary: "no grouping for all-plain fields",
		stmt:    sqlbuild.Select(peopleName, peopleTeam).AutoComplete(),
		want:    "SELECT people.name, people.team FROM people",
	}, {
		summary: "no grouping for all-aggregate fields",
		stmt:    sqlbuild.Select(sqlbuild.CountAll(), sqlbuild.Max(peopleID)).AutoComplete(),
		want:    "SELECT count(*), max(people.id) FROM people",
	}, {
		summary: "explicit grouping wins over derivation",
		stmt: sqlbuild.Select(peopleTeam, sqlbuild.Count(peopleID)).
			GroupBy(peopleActive).
			AutoComplete(),
		want: "SELECT people.team, count(people.id) FROM people GROUP BY people.active",
	}, {
		summary: "plain function groups by its column",
		stmt:    sqlbuild.Select(sqlbuild.Lower(peopleTeam), sqlbuild.CountAll()).AutoComplete(),
		want:    "SELECT lower(people.team), count(*) FROM people GROUP BY people.team",
	}}

	for _, t := range tests {
		c.Assert(t.stmt.SQL(), Equals, t.want, Commentf("\ntest %q failed", t.summary))
	}
}

func (s *StatementSuite) TestSelectSQLIsStable(c *C) {
	q := sqlbuild.Select(peopleTeam, sqlbuild.Count(peopleID)).AutoComplete()
	first := q.SQL()
	c.Assert(q.SQL(), Equals, first)

	// A second AutoComplete pass finds nothing left to fill in.
	c.Assert(q.AutoComplete().SQL(), Equals, first)
}

func (s *StatementSuite) TestInsertSQL(c *C) {
	var tests = []struct {
		summary string
		stmt    sqlbuild.Builder
		want    string
	}{{
		summary: "plain values",
		stmt: sqlbuild.InsertInto(people).
			Values(peopleID.Set(1), peopleName.Set("Ann")),
		want: "INSERT INTO people (id, name) VALUES (1, 'Ann')",
	}, {
		summary: "null value",
		stmt:    sqlbuild.InsertInto(people).Values(peopleTeam.SetNull()),
		want:    "INSERT INTO people (team) VALUES (NULL)",
	}, {
		summary: "no values",
		stmt:    sqlbuild.InsertInto(people),
		want:    "INSERT INTO people DEFAULT VALUES",
	}, {
		summary: "values reading another table become a select",
		stmt:    sqlbuild.InsertInto(people).Values(peopleName.SetField(teamsName)),
		want:    "INSERT INTO people (name) SELECT teams.name FROM teams",
	}, {
		summary: "explicit query",
		stmt: sqlbuild.InsertInto(people).
			Columns(peopleName).
			Select(sqlbuild.Select(teamsName).Where(teamsCity.EqVal("London")).AutoComplete()),
		want: "INSERT INTO people (name) SELECT teams.name FROM teams WHERE teams.city = 'London'",
	}, {
		summary: "aliased target inserts by name",
		stmt:    sqlbuild.InsertInto(people.As("p")).Values(peopleID.Set(1)),
		want:    "INSERT INTO people (id) VALUES (1)",
	}}

	for _, t := range tests {
		c.Assert(t.stmt.SQL(), Equals, t.want, Commentf("\ntest %q failed", t.summary))
	}
}

func (s *StatementSuite) TestUpdateSQL(c *C) {
	var tests = []struct {
		summary string
		stmt    sqlbuild.Builder
		want    string
	}{{
		summary: "set and where",
		stmt: sqlbuild.Update(people).
			Set(peopleSalary.Set(1000)).
			Where(peopleID.EqVal(7)).
			AutoComplete(),
		want: "UPDATE people SET salary = 1000 WHERE people.id = 7",
	}, {
		summary: "several settings",
		stmt: sqlbuild.Update(people).
			Set(peopleSalary.Set(1000), peopleTeam.SetNull()),
		want: "UPDATE people SET salary = 1000, team = NULL",
	}, {
		summary: "expression over own columns needs no from",
		stmt: sqlbuild.Update(people).
			Set(peopleSalary.SetField(sqlbuild.Plus(peopleSalary, sqlbuild.Integer.Value(500)))).
			AutoComplete(),
		want: "UPDATE people SET salary = people.salary + 500",
	}, {
		summary: "cross-table settings derive the from clause",
		stmt: sqlbuild.Update(people).
			Set(peopleTeam.SetField(teamsName)).
			Where(teamsCity.EqVal("London")).
			AutoComplete(),
		want: "UPDATE people SET team = teams.name FROM teams WHERE teams.city = 'London'",
	}, {
		summary: "explicit from is kept",
		stmt: sqlbuild.Update(people).
			Set(peopleTeam.SetField(teamsName)).
			From(teams).
			Where(teamsCity.EqVal("London")).
			AutoComplete(),
		want: "UPDATE people SET team = teams.name FROM teams WHERE teams.city = 'London'",
	}}

	for _, t := range tests {
		c.Assert(t.stmt.SQL(), Equals, t.want, Commentf("\ntest %q failed", t.summary))
	}
}

func (s *StatementSuite) TestDeleteSQL(c *C) {
	c.Assert(sqlbuild.DeleteFrom(people).Where(peopleID.EqVal(3)).SQL(),
		Equals, "DELETE FROM people WHERE people.id = 3")
	c.Assert(sqlbuild.DeleteFrom(people).SQL(),
		Equals, "DELETE FROM people")
	c.Assert(sqlbuild.DeleteFrom(people).Where(sqlbuild.And()).SQL(),
		Equals, "DELETE FROM people")
}
