package mongodb

import (
	"testing"

	"github.com/aanand-mishra/student-management/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid hex", "662a1fcb9d2f4a0012345678", false},
		{"too short", "662a1fcb", true},
		{"too long", "662a1fcb9d2f4a001234567890", true},
		{"bad charset", "zzzzzzzzzzzzzzzzzzzzzzzz", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oid, err := parseID(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, storage.ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, oid.Hex())
		})
	}
}

func TestListFilter(t *testing.T) {
	t.Run("empty search matches everything", func(t *testing.T) {
		assert.Equal(t, bson.M{}, listFilter(""))
	})

	t.Run("search builds a case-insensitive OR across three fields", func(t *testing.T) {
		re := primitive.Regex{Pattern: "doe", Options: "i"}
		assert.Equal(t, bson.M{"$or": bson.A{
			bson.M{"first_name": re},
			bson.M{"last_name": re},
			bson.M{"email": re},
		}}, listFilter("doe"))
	})

	t.Run("regex metacharacters are matched literally", func(t *testing.T) {
		f := listFilter("john.doe@x.com")
		or := f["$or"].(bson.A)
		re := or[0].(bson.M)["first_name"].(primitive.Regex)
		assert.Equal(t, `john\.doe@x\.com`, re.Pattern)
	})
}

func TestStudentDocToStudent(t *testing.T) {
	oid := primitive.NewObjectID()
	gender := "Female"

	doc := studentDoc{
		ID:        oid,
		FirstName: "Jane",
		LastName:  "Roe",
		Email:     "jane@x.com",
		Gender:    &gender,
	}
	s := doc.toStudent()
	assert.Equal(t, oid.Hex(), s.ID)
	assert.Len(t, s.ID, 24)
	require.NotNil(t, s.Gender)
	assert.Equal(t, "Female", *s.Gender)

	doc.Gender = nil
	assert.Nil(t, doc.toStudent().Gender)
}
