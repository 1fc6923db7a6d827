package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	cases := map[int64]string{
		0:        "0",
		999:      "999",
		1000:     "1,000",
		1234567:  "1,234,567",
		-1234567: "-1,234,567",
		-12:      "-12",
	}
	for n, want := range cases {
		assert.Equal(t, want, Number(n), "n=%d", n)
	}
}

func TestBytes(t *testing.T) {
	assert.Equal(t, "512 B", Bytes(512))
	assert.Equal(t, "1.5 KiB", Bytes(1536))
	assert.Equal(t, "1.0 MiB", Bytes(1<<20))
	assert.Equal(t, "1.4 GiB", Bytes(1468006400))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "0s", Duration(500*time.Millisecond))
	assert.Equal(t, "5.2s", Duration(5200*time.Millisecond))
	assert.Equal(t, "3m5.0s", Duration(3*time.Minute+5*time.Second))
	assert.Equal(t, "2h15m", Duration(2*time.Hour+15*time.Minute))
}

func TestRate(t *testing.T) {
	assert.Equal(t, "123.45", Rate(123.45))
	assert.Equal(t, "12.34K", Rate(12340))
	assert.Equal(t, "1.50M", Rate(1500000))
}

func TestDisabledProgressIsNoop(t *testing.T) {
	p := NewProgress(10, "strings", false)
	assert.False(t, p.Enabled())
	p.Update(5)
	p.Finish()
}

func TestProgressRenders(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(&buf, 4, "a label longer than the column")
	assert.True(t, p.Enabled())
	p.Update(4)
	p.Finish()
	assert.Contains(t, buf.String(), "4/4")
}
