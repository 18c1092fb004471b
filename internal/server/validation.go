package server

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"quizitup/internal/quiz"
)

var validatorOnce sync.Once

func registerValidators() {
	validatorOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		register := func(tag string, check func(string) (string, error)) {
			_ = engine.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				_, err := check(fl.Field().String())
				return err == nil
			})
		}
		register("nickname", quiz.ValidateNickname)
		register("answer", quiz.ValidateAnswer)
		register("question_id", quiz.ValidateQuestionID)
		register("question_text", quiz.ValidateQuestionText)
	})
}
