// This file is part of lc3sim.
//
// lc3sim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// lc3sim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with lc3sim.  If not, see <https://www.gnu.org/licenses/>.

package debugger

import (
	"context"
	"fmt"

	"github.com/jetsetilly/lc3sim/remote"
)

// Serve executes commands received over the transport. The output of each
// command is sent as the response, truncated to remote.MaxMessageSize. A
// command that fails is answered with the error prefixed by "* ".
//
// Serve returns after the QUIT command or when the transport fails.
func (dbg *Debugger) Serve(ctx context.Context, t remote.Transport) error {
	for {
		msg, err := t.Receive(ctx)
		if err != nil {
			return err
		}

		out, quit, err := dbg.ExecuteString(ctx, string(msg))
		if err != nil {
			out = fmt.Sprintf("%s* %v\n", out, err)
		}
		if len(out) > remote.MaxMessageSize {
			out = out[:remote.MaxMessageSize]
		}
		if err := t.Send(ctx, []byte(out)); err != nil {
			return err
		}

		if quit {
			return nil
		}
	}
}
