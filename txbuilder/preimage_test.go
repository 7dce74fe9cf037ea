package txbuilder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cashcovenants/cashtx/script"
)

func TestWriteToStreamFlagsSelective(t *testing.T) {
	p := PreImage{
		Version:     2,
		ScriptCode:  script.Empty(),
		Value:       12345,
		Sequence:    0xffffffff,
		LockTime:    0,
		SighashType: 0x41,
	}
	versionOnly, err := p.WriteToStreamFlags(PreImageWriteFlags{Version: true})
	require.Nil(t, err)
	require.Len(t, versionOnly, 4)

	valueAndSequence, err := p.WriteToStreamFlags(PreImageWriteFlags{Value: true, Sequence: true})
	require.Nil(t, err)
	require.Len(t, valueAndSequence, 12)
}

func TestWriteToStreamAllFields(t *testing.T) {
	p := PreImage{ScriptCode: script.Empty()}
	full, err := p.WriteToStream()
	require.Nil(t, err)
	require.NotEmpty(t, full)
}

func TestEmptyPreImage(t *testing.T) {
	code := script.New()
	p := EmptyPreImage(code)
	require.Equal(t, code.ToVec(), p.ScriptCode.ToVec())
}
