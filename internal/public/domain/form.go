package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alcymedia/casting-caly/api/internal/apperr"
)

// IntakeForm mirrors the public form fields. Values are kept as typed by the
// applicant so a failed submission can be re-rendered unchanged.
type IntakeForm struct {
	Nome      string `json:"nome" form:"nome" validate:"required"`
	Telefone  string `json:"telefone" form:"telefone" validate:"required"`
	Idade     string `json:"idade" form:"idade" validate:"required,age"`
	Sexo      string `json:"sexo" form:"sexo" validate:"required,gender"`
	Provincia string `json:"provincia" form:"provincia" validate:"required,province"`
	Perfil    string `json:"perfil" form:"perfil" validate:"required,profile"`
	Motivacao string `json:"motivacao" form:"motivacao" validate:"required,min=150,max=1000"`
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	mustRegister(v, "gender", func(fl validator.FieldLevel) bool { return IsGender(fl.Field().String()) })
	mustRegister(v, "province", func(fl validator.FieldLevel) bool { return IsProvince(fl.Field().String()) })
	mustRegister(v, "profile", func(fl validator.FieldLevel) bool { return IsProfileType(fl.Field().String()) })
	mustRegister(v, "age", func(fl validator.FieldLevel) bool {
		_, err := parseAge(fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Normalize trims surrounding whitespace from single-line fields.
func (f *IntakeForm) Normalize() {
	f.Nome = strings.TrimSpace(f.Nome)
	f.Telefone = strings.TrimSpace(f.Telefone)
	f.Idade = strings.TrimSpace(f.Idade)
	f.Sexo = strings.TrimSpace(f.Sexo)
	f.Provincia = strings.TrimSpace(f.Provincia)
	f.Perfil = strings.TrimSpace(f.Perfil)
}

// Validate checks the field constraints and returns the first violation as an
// *apperr.ValidationError with a message ready to show to the applicant.
func (f IntakeForm) Validate() error {
	err := formValidator.Struct(f)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return apperr.Validation("", err.Error())
	}
	first := fieldErrs[0]
	return apperr.Validation(first.Field(), fieldMessage(first))
}

// Age returns the declared age as an integer. Call after Validate.
func (f IntakeForm) Age() int {
	age, _ := parseAge(f.Idade)
	return age
}

// Reset clears every field, as the form does after a successful submission.
func (f *IntakeForm) Reset() {
	*f = IntakeForm{}
}

func parseAge(raw string) (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if age < MinAge || age > MaxAge {
		return 0, fmt.Errorf("age %d out of range", age)
	}
	return age, nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "nome":
		return "O nome completo é obrigatório."
	case "telefone":
		return "O telefone é obrigatório."
	case "idade":
		return fmt.Sprintf("A idade deve ser um número entre %d e %d.", MinAge, MaxAge)
	case "sexo":
		return "Selecione o sexo."
	case "provincia":
		return "Selecione uma província válida."
	case "perfil":
		return "Selecione um perfil válido."
	case "motivacao":
		switch fe.Tag() {
		case "min", "required":
			return fmt.Sprintf("A motivação deve ter no mínimo %d caracteres.", MinMotivationRunes)
		case "max":
			return fmt.Sprintf("A motivação deve ter no máximo %d caracteres.", MaxMotivationRunes)
		}
	}
	return fmt.Sprintf("Campo inválido: %s.", fe.Field())
}
