package stack

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_EmptyPrincipals(t *testing.T) {
	assert.Nil(t, Synthesize(nil, AccessReadOnly))
	assert.Nil(t, Synthesize([]string{}, AccessReadWrite))
	assert.Nil(t, Synthesize([]string{""}, AccessReadOnly), "blank principals do not count")
}

func TestSynthesize_ReadOnly(t *testing.T) {
	doc := Synthesize([]string{"arn:aws:iam::111122223333:root"}, AccessReadOnly)
	require.NotNil(t, doc)
	require.Len(t, doc.Statements, 1)

	st := doc.Statements[0]
	assert.Equal(t, "AllowPull", st.Sid)
	assert.Equal(t, "Allow", st.Effect)
	assert.Equal(t, []string{"arn:aws:iam::111122223333:root"}, st.Principal.AWS)
	assert.Equal(t, []string{
		"ecr:GetDownloadUrlForLayer",
		"ecr:BatchGetImage",
		"ecr:BatchCheckLayerAvailability",
	}, st.Actions)
}

func TestSynthesize_ReadWrite(t *testing.T) {
	doc := Synthesize([]string{"arn:aws:iam::111122223333:root"}, AccessReadWrite)
	require.NotNil(t, doc)
	require.Len(t, doc.Statements, 1)

	st := doc.Statements[0]
	assert.Equal(t, "AllowPushPull", st.Sid)
	assert.Equal(t, []string{
		"ecr:GetDownloadUrlForLayer",
		"ecr:BatchGetImage",
		"ecr:BatchCheckLayerAvailability",
		"ecr:PutImage",
		"ecr:InitiateLayerUpload",
		"ecr:UploadLayerPart",
		"ecr:CompleteLayerUpload",
	}, st.Actions)
}

func TestSynthesize_NormalizesPrincipals(t *testing.T) {
	doc := Synthesize([]string{"b", "a", "b", ""}, AccessReadOnly)
	require.NotNil(t, doc)
	assert.Equal(t, []string{"a", "b"}, doc.Statements[0].Principal.AWS)
}

func TestSynthesize_Deterministic(t *testing.T) {
	first := Synthesize([]string{"x", "y"}, AccessReadWrite)
	second := Synthesize([]string{"y", "x"}, AccessReadWrite)
	require.NotNil(t, first)
	assert.Equal(t, first, second)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestSynthesizeRepositoryAccess_Empty(t *testing.T) {
	assert.Nil(t, SynthesizeRepositoryAccess(nil, nil))
}

func TestSynthesizeRepositoryAccess_BothSets(t *testing.T) {
	doc := SynthesizeRepositoryAccess([]string{"reader"}, []string{"writer"})
	require.NotNil(t, doc)
	require.Len(t, doc.Statements, 2)

	assert.Equal(t, "AllowPull", doc.Statements[0].Sid)
	assert.Equal(t, []string{"reader"}, doc.Statements[0].Principal.AWS)
	assert.Equal(t, "AllowPushPull", doc.Statements[1].Sid)
	assert.Equal(t, []string{"writer"}, doc.Statements[1].Principal.AWS)
}

// A principal in both sets gets read-write and appears exactly once.
func TestSynthesizeRepositoryAccess_OverlapReadWriteWins(t *testing.T) {
	doc := SynthesizeRepositoryAccess([]string{"both", "reader"}, []string{"both"})
	require.NotNil(t, doc)
	require.Len(t, doc.Statements, 2)

	assert.Equal(t, []string{"reader"}, doc.Statements[0].Principal.AWS)
	assert.Equal(t, []string{"both"}, doc.Statements[1].Principal.AWS)
}

func TestSynthesizeRepositoryAccess_OverlapOnly(t *testing.T) {
	doc := SynthesizeRepositoryAccess([]string{"both"}, []string{"both"})
	require.NotNil(t, doc)
	require.Len(t, doc.Statements, 1)
	assert.Equal(t, "AllowPushPull", doc.Statements[0].Sid)
}

func TestPolicyDocument_MarshalShape(t *testing.T) {
	doc := Synthesize([]string{"p"}, AccessReadOnly)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "2012-10-17", decoded["Version"])
	assert.Contains(t, decoded, "Statement")
}
