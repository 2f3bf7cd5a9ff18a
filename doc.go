/*
SQLBuild constructs SQL statements from composable, typed Go values instead of strings.

Tables and columns are declared once as Go variables, usually generated from a schema.
Fields, conditions and assignments built from them compose into SELECT, INSERT, UPDATE and DELETE statements that render to SQL text.
Mistakes that string-built SQL only reveals at runtime are caught when the program is compiled: a text column never compares equal to an integer column, and a timestamp is never assigned into a boolean column.
Escaping happens in exactly one place, the encoder of each column type, so queries assembled from the builders carry no injection risk from their values.

# Basics

A table and its typed columns are declared as package variables:

	var People = sqlbuild.NewTable("people")

	var (
		PeopleID   = sqlbuild.Integer.Column(People, "id")
		PeopleName = sqlbuild.Text.Column(People, "name")
	)

The sqlbuild-gen command generates these declarations from a YAML schema.

Statements are built from the columns and rendered with SQL:

	q := sqlbuild.Select(PeopleName).
		Where(PeopleID.EqVal(42)).
		AutoComplete()
	fmt.Println(q.SQL())
	// SELECT people.name FROM people WHERE people.id = 42

AutoComplete fills in the clauses a statement can derive itself.
The FROM clause is derived by collecting every table referenced anywhere in the statement.
The GROUP BY clause is derived by splitting the result fields into aggregates and plain fields; when the two are mixed, the plain fields become the grouping.
Statements with explicit FROM or GROUP BY clauses are left alone.

# Extending

The built-in functions and operators (Count, Lower, Sum, Concat and the rest) are instances of the constructors on the column types, and new ones are declared the same way:

	var Trim = sqlbuild.Text.Apply("trim(", ")")
	var Median = sqlbuild.Float.Aggregate("median(", ")")
	var Modulo = sqlbuild.Integer.Operator("%")

New column types wrap an encoder:

	var Money = sqlbuild.Type[int64]{Encode: encodeCents}

New kinds of field and condition are added from outside the package by implementing the Field and Predicate interfaces.

# Running statements

Statements are prepared once, typically into package variables, and run on any database.
Each Statement is lazily prepared on the driver the first time it runs on a given database, and the driver prepared statements are cached and closed by finalizers when the Statement or the DB is garbage collected.

	var selectName = sqlbuild.Prepare(
		sqlbuild.Select(PeopleName).Where(PeopleID.EqVal(42)).AutoComplete())

	db := sqlbuild.NewDB(sqldb)
	var name string
	err := db.Query(ctx, selectName).Get(&name)
*/
package sqlbuild
