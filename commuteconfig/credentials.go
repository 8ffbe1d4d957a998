package commuteconfig

import (
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// CredentialProvider supplies the directions service access token.
type CredentialProvider interface {
	Load() (string, error)
}

// FileCredentialProvider reads the token from a text file. A non-empty
// EnvVar takes precedence over the file.
type FileCredentialProvider struct {
	Path   string
	EnvVar string
}

func NewFileCredentialProvider(path string) *FileCredentialProvider {
	return &FileCredentialProvider{
		Path:   path,
		EnvVar: "COMMUTE_TOKEN",
	}
}

func (p *FileCredentialProvider) Load() (string, error) {
	if p.EnvVar != "" {
		if token := strings.TrimSpace(os.Getenv(p.EnvVar)); token != "" {
			return token, nil
		}
	}

	if p.Path == "" {
		return "", &ConfigError{Source: "token", Err: errors.New("no token file configured")}
	}

	contents, err := ioutil.ReadFile(p.Path)
	if err != nil {
		return "", &ConfigError{Source: p.Path, Err: errors.Wrap(err, "cannot read token, it must be added manually")}
	}

	token := strings.TrimSpace(string(contents))
	if token == "" {
		return "", &ConfigError{Source: p.Path, Err: errors.New("token file is empty")}
	}

	return token, nil
}
