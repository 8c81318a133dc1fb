// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "simple message without event name",
			eventName: "",
			data:      "hello",
			expected:  "data: hello\n\n",
		},
		{
			name:      "simple message with event name",
			eventName: "report",
			data:      "hello",
			expected:  "event: report\ndata: hello\n\n",
		},
		{
			name:      "multiline data",
			eventName: "",
			data:      "line1\nline2\nline3",
			expected:  "data: line1\ndata: line2\ndata: line3\n\n",
		},
		{
			name:      "multiline data with event name",
			eventName: "verified",
			data:      "line1\nline2",
			expected:  "event: verified\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatEvent(tt.eventName, tt.data)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestFormatJSONEvent(t *testing.T) {
	result, err := FormatJSONEvent(EventReport, map[string]string{"url": "/reports/zur-linde.jpg"})

	require.NoError(t, err)
	assert.Equal(t, "event: report\ndata: {\"url\":\"/reports/zur-linde.jpg\"}\n\n", result)
}

func TestFormatJSONEvent_Unencodable(t *testing.T) {
	_, err := FormatJSONEvent(EventReport, make(chan int))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "encoding report event")
}

func TestHeartbeat(t *testing.T) {
	// Heartbeat should be a valid SSE comment
	assert.Equal(t, ": heartbeat\n\n", Heartbeat)
	// Should start with colon (SSE comment)
	assert.Equal(t, ':', rune(Heartbeat[0]))
}
