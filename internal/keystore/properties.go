package keystore

import (
	"strings"
)

// Properties models the keystore.properties file consumed by the Android
// Gradle build. The keys are fixed by convention in build.gradle.
type Properties struct {
	StorePassword string
	KeyPassword   string
	KeyAlias      string
	StoreFile     string
}

// Render serializes the properties in Java-properties format with a
// trailing newline, in the key order Gradle examples use.
func (p Properties) Render() string {
	var sb strings.Builder
	sb.WriteString("storePassword=")
	sb.WriteString(p.StorePassword)
	sb.WriteString("\nkeyPassword=")
	sb.WriteString(p.KeyPassword)
	sb.WriteString("\nkeyAlias=")
	sb.WriteString(p.KeyAlias)
	sb.WriteString("\nstoreFile=")
	sb.WriteString(p.StoreFile)
	sb.WriteString("\n")
	return sb.String()
}
