package export

import (
	"encoding/json"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

type status int

func (s status) String() string { return [...]string{"activo", "egresado"}[s] }

func TestValueOf(t *testing.T) {
	date := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	var nilTime *time.Time
	var nilIP *net.IP
	tests := []struct {
		name string
		in   any
		kind Kind
		text string
	}{
		{"nil", nil, KindNull, "—"},
		{"nil pointer", nilTime, KindNull, "—"},
		{"nil stringer pointer", nilIP, KindNull, "—"},
		{"zero time", time.Time{}, KindDate, "01-01-0001"},
		{"bool", true, KindBool, "true"},
		{"int", 10, KindNumber, "10"},
		{"uint8", uint8(7), KindNumber, "7"},
		{"float", 1.5, KindNumber, "1.5"},
		{"float32", float32(1.1), KindNumber, "1.1"},
		{"json number", json.Number("42"), KindNumber, "42"},
		{"large", 1234567.0, KindNumber, "1234567"},
		{"string", "Ana", KindText, "Ana"},
		{"empty string", "", KindText, ""},
		{"bytes", []byte("x"), KindText, "x"},
		{"date", date, KindDate, "05-03-2026"},
		{"date pointer", &date, KindDate, "05-03-2026"},
		{"stringer", status(1), KindOther, "egresado"},
		{"error", errors.New("falla"), KindOther, "falla"},
		{"int pointer", ptr(3), KindNumber, "3"},
		{"slice", []int{1, 2}, KindOther, "[1 2]"},
		{"value", Text("x"), KindText, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValueOf(tt.in)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.text, Normalize(v, nil))
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestValueJSON(t *testing.T) {
	var row Row
	require.NoError(t, json.Unmarshal([]byte(`{"nombre":"Ana","edad":10,"activo":true,"codigo":"2024-01-05","ingreso":{"date":"2026-03-05"},"nota":null,"alta":{"date":"2026-03-05T10:00:00Z"},"extra":{"date":"ayer"}}`), &row))

	assert.Equal(t, Text("Ana"), row["nombre"])
	assert.Equal(t, KindNumber, row["edad"].Kind())
	assert.Equal(t, 10.0, row["edad"].Number())
	assert.Equal(t, Bool(true), row["activo"])
	assert.Equal(t, KindDate, row["ingreso"].Kind())
	assert.Equal(t, "05-03-2026", Normalize(row["ingreso"], nil))
	assert.True(t, row["nota"].IsNull())
	assert.Equal(t, KindDate, row["alta"].Kind())
	assert.Equal(t, Text("2024-01-05"), row["codigo"])
	assert.Equal(t, "2024-01-05", Normalize(row["codigo"], nil))
	assert.Equal(t, KindOther, row["extra"].Kind())

	data, err := json.Marshal(Row{"a": Null(), "b": Number(1.5), "c": Text("x"), "d": Date(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":null,"b":1.5,"c":"x","d":{"date":"2026-03-05T00:00:00Z"}}`, string(data))

	var back Row
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "05-03-2026", Normalize(back["d"], nil))
}

func TestValueYAML(t *testing.T) {
	var row Row
	require.NoError(t, yaml.Unmarshal([]byte("nombre: Luis\nedad: ~\nregistro: 2026-10-17\ningreso: {date: 2026-10-17}\n"), &row))
	assert.Equal(t, Text("Luis"), row["nombre"])
	assert.Equal(t, Text("2026-10-17"), row["registro"])
	assert.True(t, row["edad"].IsNull())
	assert.Equal(t, "17-10-2026", Normalize(row["ingreso"], nil))
}
