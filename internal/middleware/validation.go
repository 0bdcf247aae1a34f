package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"

	"github.com/overcomingroom/bellbell/pkg/validator"
)

// RegisterValidators installs the custom binding tags on gin's validator engine.
// It must run before the first request is bound.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*playground.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding engine %T", binding.Validator.Engine())
	}
	return validator.Register(v)
}
