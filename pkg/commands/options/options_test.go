package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/bizdesk/pkg/record"
)

func TestRecordOptions(t *testing.T) {
	o := RecordOptions{
		JSON:  `{"Client Id":"C1","amount":2500}`,
		Pairs: []string{"Client Name=Acme Corp", "note=a=b"},
	}
	r, err := o.Record()
	require.NoError(t, err)
	assert.Equal(t, record.Record{
		"Client Id":   "C1",
		"amount":      float64(2500),
		"Client Name": "Acme Corp",
		"note":        "a=b",
	}, r)
}

func TestRecordOptionsErrors(t *testing.T) {
	for name, o := range map[string]RecordOptions{
		"empty":     {},
		"bad pair":  {Pairs: []string{"novalue"}},
		"blank key": {Pairs: []string{"=x"}},
		"array":     {JSON: `[1,2]`},
		"broken":    {JSON: `{"a":`},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := o.Record()
			assert.Error(t, err)
		})
	}
}

func TestFieldList(t *testing.T) {
	o := CollectionOptions{Fields: "Client Name, Contact No"}
	assert.Equal(t, []string{"Client Name", "Contact No"}, o.FieldList())
}
