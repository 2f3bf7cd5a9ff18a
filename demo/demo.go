package demo

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/canonical/sqlbuild"
)

var people = sqlbuild.NewTable("people")

var (
	peopleName   = sqlbuild.Text.Column(people, "name")
	peopleHeight = sqlbuild.Integer.Column(people, "height_cm")
	peopleTown   = sqlbuild.Text.Column(people, "home_town")
)

var location = sqlbuild.NewTable("location")

var (
	locationTown       = sqlbuild.Text.Column(location, "town_name")
	locationPopulation = sqlbuild.Integer.Column(location, "population")
)

type person struct {
	name   string
	height int64
	town   string
}

type place struct {
	town       string
	population int64
}

func example() error {
	// Log every query to stderr while the demo runs.
	sqlbuild.SetLogger(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.DebugLevel))

	sqldb, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return err
	}
	db := sqlbuild.NewDB(sqldb)

	_, err = db.PlainDB().Exec(`
		CREATE TABLE people (
			name text,
			height_cm integer,
			home_town text
		);
		CREATE TABLE location (
			town_name text,
			population integer
		);`)
	if err != nil {
		return err
	}

	folk := []person{{"Jim", 150, "Kabul"}, {"Saba", 162, "Berlin"}, {"Dave", 169, "Brasília"}, {"Sophie", 174, "Berlin"}, {"Kiri", 168, "Cape Town"}}
	places := []place{{"Kabul", 13000000}, {"Berlin", 3677472}, {"Brasília", 3039444}, {"Cape Town", 4710000}}

	ctx := context.Background()
	for _, p := range folk {
		insert := sqlbuild.Prepare(sqlbuild.InsertInto(people).Values(
			peopleName.Set(p.name),
			peopleHeight.Set(p.height),
			peopleTown.Set(p.town),
		))
		if err := db.Query(ctx, insert).Run(); err != nil {
			return err
		}
	}
	for _, l := range places {
		insert := sqlbuild.Prepare(sqlbuild.InsertInto(location).Values(
			locationTown.Set(l.town),
			locationPopulation.Set(l.population),
		))
		if err := db.Query(ctx, insert).Run(); err != nil {
			return err
		}
	}

	// Find people taller than Jim.
	jim := folk[0]
	tallerThan := sqlbuild.Prepare(
		sqlbuild.Select(peopleName).
			Where(peopleHeight.GtVal(jim.height)).
			OrderBy(peopleHeight).
			AutoComplete())
	rows, err := db.Query(ctx, tallerThan).Rows()
	if err != nil {
		return err
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		fmt.Printf("%s is taller than %s.\n", name, jim.name)
	}
	if err := rows.Close(); err != nil {
		return err
	}

	// Find the towns the taller people call home.
	tallTowns := sqlbuild.Prepare(
		sqlbuild.Select(locationTown, locationPopulation).
			Distinct().
			Where(
				peopleTown.Eq(locationTown),
				peopleHeight.GtVal(jim.height)).
			OrderBy(locationTown).
			AutoComplete())
	rows, err = db.Query(ctx, tallTowns).Rows()
	if err != nil {
		return err
	}
	for rows.Next() {
		var town string
		var population int64
		if err := rows.Scan(&town, &population); err != nil {
			return err
		}
		fmt.Printf("%s (population %d) is home to someone taller than %s.\n", town, population, jim.name)
	}
	if err := rows.Close(); err != nil {
		return err
	}

	// Count the taller people per town.
	headCount := sqlbuild.Prepare(
		sqlbuild.Select(peopleTown, sqlbuild.Count(peopleName)).
			Where(peopleHeight.GtVal(jim.height)).
			OrderBy(peopleTown).
			AutoComplete())
	rows, err = db.Query(ctx, headCount).Rows()
	if err != nil {
		return err
	}
	for rows.Next() {
		var town string
		var count int64
		if err := rows.Scan(&town, &count); err != nil {
			return err
		}
		fmt.Printf("%s: %d taller than %s.\n", town, count, jim.name)
	}
	return rows.Close()
}

func main() {
	err := example()
	if err != nil {
		panic(err)
	}
}
