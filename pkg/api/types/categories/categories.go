package categories

import "github.com/lucas-ellwanger/newtube/pkg/domain"

type Category struct {
	CategoryId  string  `json:"categoryId"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func Compose(c domain.Category) Category {
	return Category{CategoryId: c.Id, Name: c.Name, Description: c.Description}
}
