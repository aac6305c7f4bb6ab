package customvalidator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStrongPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "валидный пароль", password: "Password@123", want: true},
		{name: "слишком короткий", password: "Short1!", want: false},
		{name: "без заглавных букв", password: "alllower1!", want: false},
		{name: "без строчных букв", password: "ALLUPPER1!", want: false},
		{name: "без спецсимвола", password: "NoSpecial99", want: false},
		{name: "ровно девять символов", password: "Abcdefg8!", want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsStrongPassword(tc.password))
		})
	}
}

func TestIsGoodEmail(t *testing.T) {
	assert.True(t, IsGoodEmail("john@gearguard.com"))
	assert.False(t, IsGoodEmail("john@gearguard"))
	assert.False(t, IsGoodEmail("not-an-email"))
	assert.False(t, IsGoodEmail("two words@gearguard.com"))
}
