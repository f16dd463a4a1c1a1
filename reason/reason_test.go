/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package reason

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	require.Equal(t, "storage.pg.connect_timeout", Normalize("  Storage/PG.Connect-Timeout "))
	require.Equal(t, "", Normalize("   "))
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Reason
		wantErr error
	}{
		{"", Empty, nil},
		{"parcel.lookup", "parcel.lookup", nil},
		{"auth/jwt/verify", "auth.jwt.verify", nil},
		{"a.b.c.d", "a.b.c.d", nil},
		{"ab", Empty, ErrReasonInvalidLength},
		{"a.b.c.d.e", Empty, ErrReasonInvalidFormat},
		{"parcel..lookup", Empty, ErrReasonInvalidFormat},
		{"1parcel.lookup", Empty, ErrReasonInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMustParse(t *testing.T) {
	require.Panics(t, func() { MustParse("") })
	require.Panics(t, func() { MustParse("Not Valid") })
	require.Equal(t, Reason("parcel.lookup"), MustParse("parcel.lookup"))
}

func TestSegments(t *testing.T) {
	require.Nil(t, Empty.Segments())
	require.Equal(t, []string{"storage", "pg", "connect"}, Reason("storage.pg.connect").Segments())
}

func TestText(t *testing.T) {
	var r Reason
	require.NoError(t, r.UnmarshalText([]byte("  ")))
	require.Equal(t, Empty, r)
	require.NoError(t, r.UnmarshalText([]byte("Parcel/Lookup")))
	require.Equal(t, Reason("parcel.lookup"), r)

	b, err := r.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "parcel.lookup", string(b))
}
