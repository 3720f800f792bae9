package signal

import (
	"encoding/json"
	"testing"

	"github.com/dkeye/Lobby/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name      string
		frame     string
		wantEvent string
		wantErr   error
	}{
		{name: "event with data", frame: `{"event":"joinRoom","data":"lobby"}`, wantEvent: "joinRoom"},
		{name: "event without data", frame: `{"event":"getRooms"}`, wantEvent: "getRooms"},
		{name: "not json", frame: `joinRoom lobby`, wantErr: ErrBadFrame},
		{name: "missing event", frame: `{"data":"lobby"}`, wantErr: ErrBadFrame},
		{name: "event not a string", frame: `{"event":42}`, wantErr: ErrBadFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := DecodeEnvelope([]byte(tt.frame))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantEvent, env.Event)
		})
	}
}

func TestEnvelope_RoomName(t *testing.T) {
	tests := []struct {
		name    string
		frame   string
		want    string
		wantErr bool
	}{
		{name: "bare string", frame: `{"event":"joinRoom","data":"lobby"}`, want: "lobby"},
		{name: "object", frame: `{"event":"joinRoom","data":{"roomName":"games"}}`, want: "games"},
		{name: "missing", frame: `{"event":"joinRoom"}`, wantErr: true},
		{name: "number", frame: `{"event":"joinRoom","data":7}`, wantErr: true},
		{name: "object without name", frame: `{"event":"joinRoom","data":{"room":"x"}}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := DecodeEnvelope([]byte(tt.frame))
			require.NoError(t, err)
			got, err := env.RoomName()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadPayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvelope_Decode(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"event":"message","data":{"roomName":"lobby","sender":"alice","avatarUrl":"a.png","message":"hi"}}`))
	require.NoError(t, err)

	var p core.MessagePayload
	require.NoError(t, env.Decode(&p))
	assert.Equal(t, core.MessagePayload{RoomName: "lobby", Sender: "alice", AvatarURL: "a.png", Message: "hi"}, p)

	empty, err := DecodeEnvelope([]byte(`{"event":"message"}`))
	require.NoError(t, err)
	assert.ErrorIs(t, empty.Decode(&p), ErrBadPayload)
}

func TestEncodeEnvelope(t *testing.T) {
	frame, err := EncodeEnvelope(core.EventUserLeft, "abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"user-left","data":"abc"}`, string(frame))

	frame, err = EncodeEnvelope(core.EventRoomInfo, core.RoomInfo{RoomName: "lobby", Users: []core.MemberDTO{{ID: "a", Name: "alice"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"roomInfo","data":{"roomName":"lobby","users":[{"id":"a","name":"alice","avatarUrl":""}]}}`, string(frame))

	_, err = EncodeEnvelope(core.EventMessage, json.RawMessage(`{broken`))
	assert.Error(t, err)
}
