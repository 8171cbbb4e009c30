package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/candela-labs/vesting-ledger/backend/internal/domain"
)

func TestGenerateRandomAddress(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.True(t, IsValidAddress(GenerateRandomAddress()))
	}
}

func TestGenerateRandomAccount(t *testing.T) {
	account, err := GenerateRandomAccount("test-password", "candela.dev")
	require.NoError(t, err)

	assert.True(t, IsValidAddress(account.Address))
	assert.NotEmpty(t, account.FullName)
	assert.Regexp(t, `^[a-z0-9]+@candela\.dev$`, account.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("test-password")))
}

func TestGenerateRandomPassword(t *testing.T) {
	for i := 0; i < 50; i++ {
		password := GenerateRandomPassword(16)

		assert.Len(t, password, 16)
		for _, c := range password {
			assert.Contains(t, string(letters), string(c))
		}
	}
}

func TestGenerateRandomSchedule(t *testing.T) {
	owner := GenerateRandomAddress()
	beneficiary := GenerateRandomAddress()

	for i := 0; i < 50; i++ {
		s := GenerateRandomSchedule(owner, beneficiary)

		assert.Equal(t, owner, s.Owner)
		assert.Equal(t, beneficiary, s.Beneficiary)
		assert.Equal(t, domain.ScheduleStateActive, s.State)
		assert.Positive(t, s.TotalAmount)
		assert.LessOrEqual(t, s.CliffDuration, s.TotalDuration)
	}
}
