package articleservice

import (
	"github.com/google/uuid"

	"github.com/bmwadforth/articlehub/internal/common"
)

// validateTitle only rejects a missing title; title and description are otherwise stored verbatim.
func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
}

func validateBlobID(v *common.Validator, id *string, name string) {
	if id == nil {
		return
	}
	_, err := uuid.Parse(*id)
	v.Check(err == nil, name, "must be a valid blob id")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
