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

package prefs

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// preferences given on the command line with the -prefs flag. each group is
// the result of one call to PushCommandLineStack(). only the top group is
// consulted by GetCommandLinePref()
type commandLine struct {
	crit   sync.Mutex
	groups []map[string]string
}

var cl commandLine

// PushCommandLineStack parses a preferences string and adds it as a new group.
// The string is made up of key/value pairs separated by a semi-colon. Key and
// value are separated by a double colon:
//
//	hardware.leaSetsCC::false; os.startSP::0x0800
//
// Malformed pairs are ignored.
func PushCommandLineStack(prefs string) {
	cl.crit.Lock()
	defer cl.crit.Unlock()

	group := make(map[string]string)
	for _, p := range strings.Split(prefs, ";") {
		kv := strings.Split(p, "::")
		if len(kv) == 2 {
			group[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}
	cl.groups = append(cl.groups, group)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack(). Returns the unused preferences of the group as a
// preferences string, sorted by key.
func PopCommandLineStack() string {
	cl.crit.Lock()
	defer cl.crit.Unlock()

	if len(cl.groups) == 0 {
		return ""
	}

	popped := cl.groups[len(cl.groups)-1]
	cl.groups = cl.groups[:len(cl.groups)-1]

	keys := make([]string, 0, len(popped))
	for k := range popped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := make([]string, 0, len(keys))
	for _, k := range keys {
		s = append(s, fmt.Sprintf("%s::%s", k, popped[k]))
	}

	return strings.Join(s, "; ")
}

// SizeCommandLineStack returns the number of groups on the stack.
func SizeCommandLineStack() int {
	cl.crit.Lock()
	defer cl.crit.Unlock()
	return len(cl.groups)
}

// GetCommandLinePref returns the value for key from the top group. The value
// is removed from the group when it is returned.
func GetCommandLinePref(key string) (bool, Value) {
	cl.crit.Lock()
	defer cl.crit.Unlock()

	if len(cl.groups) == 0 {
		return false, nil
	}

	group := cl.groups[len(cl.groups)-1]
	if v, ok := group[key]; ok {
		delete(group, key)
		return true, v
	}

	return false, nil
}
