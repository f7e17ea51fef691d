// Package keystore generates a release keystore through the external
// keytool binary and writes the keystore.properties file the Android
// Gradle build signs with.
package keystore
