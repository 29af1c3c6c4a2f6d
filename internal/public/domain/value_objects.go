package domain

import (
	"fmt"
	"strings"
)

const (
	MinPhotos = 2
	MaxPhotos = 5
	// MaxPhotoPixels bounds width*height of an uploaded photo.
	MaxPhotoPixels = 40_000_000

	MinAge = 6
	MaxAge = 100

	MinMotivationRunes = 150
	MaxMotivationRunes = 1000

	PhotoFolder = "photos"
	CVFolder    = "cv"
)

var (
	Genders = []string{"Masculino", "Feminino", "Outro"}

	Provinces = []string{
		"Maputo Cidade",
		"Maputo Província",
		"Gaza",
		"Inhambane",
		"Sofala",
		"Manica",
		"Tete",
		"Zambézia",
		"Nampula",
		"Cabo Delgado",
		"Niassa",
	}

	ProfileTypes = []string{
		"Atores",
		"Modelos",
		"Bailarinos",
		"Criadores de conteúdo",
		"Talentos emergentes",
	}

	genderSet      = makeStringSet(Genders)
	provinceSet    = makeStringSet(Provinces)
	profileTypeSet = makeStringSet(ProfileTypes)
)

func makeStringSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

type Gender string

func NewGender(value string) (Gender, error) {
	trimmed := strings.TrimSpace(value)
	if _, ok := genderSet[trimmed]; !ok {
		return "", fmt.Errorf("invalid gender: %q", value)
	}
	return Gender(trimmed), nil
}

func (g Gender) String() string {
	return string(g)
}

type Province string

func NewProvince(value string) (Province, error) {
	trimmed := strings.TrimSpace(value)
	if _, ok := provinceSet[trimmed]; !ok {
		return "", fmt.Errorf("invalid province: %q", value)
	}
	return Province(trimmed), nil
}

func (p Province) String() string {
	return string(p)
}

type ProfileType string

func NewProfileType(value string) (ProfileType, error) {
	trimmed := strings.TrimSpace(value)
	if _, ok := profileTypeSet[trimmed]; !ok {
		return "", fmt.Errorf("invalid profile type: %q", value)
	}
	return ProfileType(trimmed), nil
}

func (p ProfileType) String() string {
	return string(p)
}

// IsGender, IsProvince and IsProfileType back the form validator tags.
func IsGender(value string) bool {
	_, err := NewGender(value)
	return err == nil
}

func IsProvince(value string) bool {
	_, err := NewProvince(value)
	return err == nil
}

func IsProfileType(value string) bool {
	_, err := NewProfileType(value)
	return err == nil
}
