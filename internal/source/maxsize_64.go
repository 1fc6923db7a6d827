//go:build amd64 || arm64 || loong64 || ppc64 || ppc64le || riscv64 || s390x || mips64 || mips64le

package source

const maxSize = 0xFFFFFFFFFFFF
