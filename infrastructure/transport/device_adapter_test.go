package transport

import (
	"testing"
)

// testError is a simple error type for tests
type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}

// MockClient implements the Client interface for testing
type MockClient struct {
	connected    bool
	connectError error
	executedCmds []string
	cmdResponses map[string]string
	cmdErrors    map[string]error
}

func (m *MockClient) Connect() error {
	if m.connectError != nil {
		return m.connectError
	}
	m.connected = true
	return nil
}

func (m *MockClient) Disconnect() {
	m.connected = false
}

func (m *MockClient) ExecuteCommand(cmd string) (string, error) {
	m.executedCmds = append(m.executedCmds, cmd)
	if m.cmdErrors != nil {
		if err, exists := m.cmdErrors[cmd]; exists {
			return "", err
		}
	}
	if m.cmdResponses != nil {
		if resp, exists := m.cmdResponses[cmd]; exists {
			return resp, nil
		}
	}
	return "mock response", nil
}

func (m *MockClient) IsConnected() bool {
	return m.connected
}

func TestNewDeviceAdapter(t *testing.T) {
	mockClient := &MockClient{}
	adapter := NewDeviceAdapter(mockClient)

	if adapter == nil {
		t.Fatal("NewDeviceAdapter() returned nil")
	}

	if adapter.client != mockClient {
		t.Error("NewDeviceAdapter() did not set client correctly")
	}
}

func TestDeviceAdapter_Connect(t *testing.T) {
	tests := []struct {
		name       string
		connectErr error
		expectErr  bool
		expectConn bool
	}{
		{
			name:       "successful connection",
			connectErr: nil,
			expectErr:  false,
			expectConn: true,
		},
		{
			name:       "connection error",
			connectErr: &testError{"connection failed"},
			expectErr:  true,
			expectConn: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := &MockClient{connectError: tt.connectErr}
			adapter := NewDeviceAdapter(mockClient)

			err := adapter.Connect()

			if (err != nil) != tt.expectErr {
				t.Errorf("Connect() error = %v, expectErr %v", err, tt.expectErr)
			}
			if adapter.IsConnected() != tt.expectConn {
				t.Errorf("IsConnected() = %v, want %v", adapter.IsConnected(), tt.expectConn)
			}
		})
	}
}

func TestDeviceAdapter_ExecuteCommand(t *testing.T) {
	mockClient := &MockClient{
		cmdResponses: map[string]string{
			"show version": "Cisco IOS-XE Software",
		},
	}
	adapter := NewDeviceAdapter(mockClient)

	output, err := adapter.ExecuteCommand("show version")
	if err != nil {
		t.Fatalf("ExecuteCommand() unexpected error: %v", err)
	}
	if output != "Cisco IOS-XE Software" {
		t.Errorf("ExecuteCommand() = %q", output)
	}
	if len(mockClient.executedCmds) != 1 || mockClient.executedCmds[0] != "show version" {
		t.Errorf("unexpected executed commands: %v", mockClient.executedCmds)
	}
}

func TestDeviceAdapter_Disconnect(t *testing.T) {
	mockClient := &MockClient{connected: true}
	adapter := NewDeviceAdapter(mockClient)

	adapter.Disconnect()
	if adapter.IsConnected() {
		t.Error("Disconnect() should leave the adapter disconnected")
	}
}
