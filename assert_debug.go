//go:build checkbitdebug

package checkbit

const debugAssertions = true
