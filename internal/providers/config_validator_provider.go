package providers

import (
	"errors"

	"github.com/gookit/validate"

	"instarecipe/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

// Validate runs the tag-based validation over the whole config tree plus the
// cross-field checks the tags cannot express.
func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors.OneError()
	}

	if cv.conf.Fetch.MaxDelay < cv.conf.Fetch.MinDelay {
		return errors.New("fetch.maxDelay must not be smaller than fetch.minDelay")
	}
	if len(cv.conf.LLM.Models) == 0 {
		return errors.New("llm.models must list at least one model")
	}
	return nil
}
