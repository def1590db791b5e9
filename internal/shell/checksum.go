package shell

// Checksum returns the Fletcher-16 checksum of s. The on-device
// console keys its command table by checksum instead of by string to
// save flash space; the same keying is kept here so the table matches
// the firmware's byte for byte.
func Checksum(s string) uint16 {
	var sum1, sum2 uint16
	for i := 0; i < len(s); i++ {
		sum1 = (sum1 + uint16(s[i])) % 255
		sum2 = (sum2 + sum1) % 255
	}
	return sum2<<8 | sum1
}
