package utils

import (
	"fmt"
	"net/url"
)

// AvatarURL builds the placeholder avatar for accounts without an
// uploaded picture.
func AvatarURL(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&size=150&background=random", url.QueryEscape(name))
}
