package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankloan/internal/data"
)

var applicant = data.Applicant{
	ID: 30, Age: 55, Experience: 3, Income: 49, ZIPCode: 91107, Family: 4, CCAvg: 1.6,
	Education: 2, Mortgage: 0, SecuritiesAccount: 1, CDAccount: 1, Online: 0, CreditCard: 0,
}

func TestVectorizeFollowsColumnOrder(t *testing.T) {
	v, err := Vectorize(applicant, []string{"Income", "Age", "CCAvg", "CD Account"})
	require.NoError(t, err)
	assert.Equal(t, []float64{49, 55, 1.6, 1}, v)
}

func TestVectorizeLegacyHeaders(t *testing.T) {
	v, err := Vectorize(applicant, []string{"AGE", "Exprience", "securities_account", "ZIP"})
	require.NoError(t, err)
	assert.Equal(t, []float64{55, 3, 1, 91107}, v)
}

func TestVectorizeUnknownColumn(t *testing.T) {
	_, err := Vectorize(applicant, []string{"Age", "Gender"})
	assert.ErrorIs(t, err, ErrUnknownColumn)

	_, err = VectorizeAll([]data.Applicant{applicant}, []string{"Gender"})
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestVectorizeAll(t *testing.T) {
	b := applicant
	b.Income = 81
	rows, err := VectorizeAll([]data.Applicant{applicant, b}, []string{"Income"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{49}, {81}}, rows)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "personalloan", Normalize(" Personal Loan "))
	assert.Equal(t, "experience", Normalize("Exprience"))
	assert.Equal(t, "creditcard", Normalize("Credit-Card"))
}
