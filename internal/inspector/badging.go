package inspector

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const (
	permissionPrefix = "android.permission."
	featurePrefix    = "android.feature."
)

// Badging is the subset of "aapt dump badging" output used for the index
type Badging struct {
	PackageName string
	VersionCode int
	VersionName string
	Label       string
	Icon        string

	SDKVersion    int
	HasSDKVersion bool
	NativeCode    string // comma separated ABIs

	Permissions []string
	Features    []string
}

// ParseBadging parses "aapt dump badging" output. The package name and
// version code are mandatory.
func ParseBadging(output []byte) (*Badging, error) {
	b := &Badging{}
	var haveCode bool

	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case strings.HasPrefix(line, "package:"):
			fields := parseFields(line)
			b.PackageName = fields["name"]
			b.VersionName = fields["versionName"]
			if code, ok := fields["versionCode"]; ok && code != "" {
				n, err := strconv.Atoi(code)
				if err != nil {
					return nil, fmt.Errorf("invalid versionCode %q: %w", code, err)
				}
				b.VersionCode = n
				haveCode = true
			}
		case strings.HasPrefix(line, "application:"):
			fields := parseFields(line)
			b.Label = fields["label"]
			b.Icon = fields["icon"]
		case strings.HasPrefix(line, "sdkVersion:"):
			if v, ok := firstQuoted(line); ok {
				n, err := strconv.Atoi(v)
				if err != nil {
					return nil, fmt.Errorf("invalid sdkVersion %q: %w", v, err)
				}
				b.SDKVersion = n
				b.HasSDKVersion = true
			}
		case strings.HasPrefix(line, "native-code:"):
			b.NativeCode = strings.Join(allQuoted(line), ",")
		case strings.HasPrefix(line, "uses-permission:"):
			if v, ok := namedOrFirst(line); ok {
				b.Permissions = append(b.Permissions, strings.TrimPrefix(v, permissionPrefix))
			}
		case strings.HasPrefix(line, "uses-feature:"):
			if v, ok := namedOrFirst(line); ok {
				b.Features = append(b.Features, strings.TrimPrefix(v, featurePrefix))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if b.PackageName == "" {
		return nil, fmt.Errorf("no package name in badging output")
	}
	if !haveCode {
		return nil, fmt.Errorf("no versionCode for %s in badging output", b.PackageName)
	}

	return b, nil
}

// parseFields collects the key='value' tokens of a badging line. Values may
// contain spaces; only a quote ends them.
func parseFields(line string) map[string]string {
	fields := make(map[string]string)

	rest := line
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		rest = rest[i+1:]
	}

	for {
		eq := strings.Index(rest, "='")
		if eq < 0 {
			return fields
		}
		key := rest[:eq]
		if i := strings.LastIndexAny(key, " \t"); i >= 0 {
			key = key[i+1:]
		}
		rest = rest[eq+2:]

		end := strings.IndexByte(rest, '\'')
		if end < 0 {
			fields[key] = rest
			return fields
		}
		if _, dup := fields[key]; !dup {
			fields[key] = rest[:end]
		}
		rest = rest[end+1:]
	}
}

// firstQuoted returns the first single-quoted value of a line
func firstQuoted(line string) (string, bool) {
	start := strings.IndexByte(line, '\'')
	if start < 0 {
		return "", false
	}
	end := strings.IndexByte(line[start+1:], '\'')
	if end < 0 {
		return "", false
	}
	return line[start+1 : start+1+end], true
}

// allQuoted returns every single-quoted value of a line
func allQuoted(line string) []string {
	var values []string
	for {
		v, ok := firstQuoted(line)
		if !ok {
			return values
		}
		values = append(values, v)
		line = line[strings.IndexByte(line, '\'')+len(v)+2:]
	}
}

// namedOrFirst handles both "uses-permission:'x'" and the newer
// "uses-permission: name='x' maxSdkVersion='18'" forms
func namedOrFirst(line string) (string, bool) {
	if v, ok := parseFields(line)["name"]; ok {
		return v, true
	}
	return firstQuoted(line)
}
