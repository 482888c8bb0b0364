package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/infrastructure/persistence/projections"
)

func printPersons(w io.Writer, persons []person.Person) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tROLE\tPHONE\tEMAIL\tSUBJECTS\tHOURS")
	for i, p := range persons {
		hours := "-"
		if h, ok := p.Hours(); ok {
			hours = h.String()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", i+1, p.Name(), p.Role(), p.Phone(), p.Email(),
			strings.Join(p.Subjects().Strings(), ","), hours)
	}
	_ = tw.Flush()
}

func printCard(w io.Writer, card projections.PersonCard) {
	p := card.Person
	fmt.Fprintf(w, "%s (%s)\n", p.Name(), p.Role().Label())
	fmt.Fprintf(w, "  phone:    %s\n", p.Phone())
	fmt.Fprintf(w, "  email:    %s\n", p.Email())
	fmt.Fprintf(w, "  address:  %s\n", p.Address())
	fmt.Fprintf(w, "  subjects: %s\n", strings.Join(p.Subjects().Strings(), ", "))
	if h, ok := p.Hours(); ok {
		fmt.Fprintf(w, "  hours:    %s\n", h)
	}

	fmt.Fprintf(w, "Lessons (%d):\n", len(card.Lessons))
	for _, l := range card.Lessons {
		fmt.Fprintf(w, "  %s\n", l)
	}
	fmt.Fprintf(w, "Associates (%d):\n", len(card.Associates))
	for _, other := range card.Associates {
		fmt.Fprintf(w, "  %s (%s)\n", other.Name(), other.Role().Label())
	}
	if len(card.Subjects) > 0 {
		fmt.Fprintf(w, "Subjects in lessons: %s\n", strings.Join(card.Subjects.Strings(), ", "))
	}
	if card.HasClashes() {
		printClashes(w, card)
	}
}

func printClashes(w io.Writer, card projections.PersonCard) {
	fmt.Fprintf(w, "%s has %d clashing lesson pair(s):\n", card.Person.Name(), len(card.Clashes))
	for _, c := range card.Clashes {
		fmt.Fprintf(w, "  %s\n  %s\n", c.First, c.Second)
	}
}
