package user

import (
	"testing"

	"campus-connect/internal/global/database"
	"campus-connect/internal/global/response"
	"campus-connect/internal/store"
	"campus-connect/test"

	"github.com/stretchr/testify/require"
)

func setupUserTest(t *testing.T) {
	t.Helper()
	database.Store = store.NewMemStore()
	(&ModuleUser{}).Init()
}

func TestRegisterAndLogin(t *testing.T) {
	setupUserTest(t)

	resp := test.DoRequest(t, Register, RegisterReq{
		Email:    "alice@techuniversity.edu",
		Password: "Str0ng!pass",
		Name:     "Alice",
	})
	test.CreatedOK(t, resp)

	resp = test.DoRequest(t, Login, LoginReq{
		Email:    "alice@techuniversity.edu",
		Password: "Str0ng!pass",
	})
	test.NoError(t, resp)

	var data struct {
		Token string `json:"token"`
	}
	test.DecodeData(t, resp, &data)
	require.NotEmpty(t, data.Token)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	setupUserTest(t)

	first := test.DoRequest(t, Register, RegisterReq{
		Email:    "bob@techuniversity.edu",
		Password: "Str0ng!pass",
		Name:     "Bob",
	})
	test.CreatedOK(t, first)

	second := test.DoRequest(t, Register, RegisterReq{
		Email:    "bob@techuniversity.edu",
		Password: "An0ther!pass",
		Name:     "Bob Again",
	})
	test.CodeEqual(t, response.ErrAlreadyExists, second)
}

func TestRegisterRejectsWeakPasswords(t *testing.T) {
	setupUserTest(t)

	weak := []string{
		"short!1",      // under 8 characters
		"alllowercase", // no digit, no special
		"12345678!",    // no letter
		"Password1",    // no special
	}
	for _, password := range weak {
		resp := test.DoRequest(t, Register, RegisterReq{
			Email:    "carol@techuniversity.edu",
			Password: password,
			Name:     "Carol",
		})
		test.CodeEqual(t, response.ErrInvalidRequest, resp)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	setupUserTest(t)

	test.DoRequest(t, Register, RegisterReq{
		Email:    "dave@techuniversity.edu",
		Password: "Str0ng!pass",
		Name:     "Dave",
	})

	resp := test.DoRequest(t, Login, LoginReq{
		Email:    "dave@techuniversity.edu",
		Password: "Wr0ng!pass",
	})
	test.ErrorEqual(t, response.ErrInvalidPassword, resp)
}

// An unknown email answers exactly like a wrong password.
func TestLoginUnknownEmailIsIndistinguishable(t *testing.T) {
	setupUserTest(t)

	resp := test.DoRequest(t, Login, LoginReq{
		Email:    "ghost@techuniversity.edu",
		Password: "Whatever!1",
	})
	test.ErrorEqual(t, response.ErrInvalidPassword, resp)
}
