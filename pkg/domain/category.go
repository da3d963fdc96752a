package domain

import (
	"strings"
	"time"
)

type Category struct {
	Id          string
	Name        string
	Description *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type CategorySpec struct {
	Name        string
	Description string
}

// DefaultCategories are registered by `newtube categories seed`.
func DefaultCategories() []CategorySpec {
	names := []string{
		"Cars and vehicles",
		"Comedy",
		"Education",
		"Gaming",
		"Entertainment",
		"Film and animation",
		"How-to and style",
		"Music",
		"News and politics",
		"People and blogs",
		"Pets and animals",
		"Science and technology",
		"Sports",
		"Travel and events",
	}
	specs := make([]CategorySpec, 0, len(names))
	for _, n := range names {
		specs = append(specs, CategorySpec{Name: n, Description: "Videos related to " + strings.ToLower(n)})
	}
	return specs
}

