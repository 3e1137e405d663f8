package archive

// IEEE 反射多项式，与zip本地头/中央目录要求的校验算法一致
const IEEE = 0xEDB88320

// ieeeTable 进程启动时计算一次，之后所有校验复用
var ieeeTable = makeTable(IEEE)

func makeTable(poly uint32) *[256]uint32 {
	t := new([256]uint32)
	for i := 0; i < 256; i++ {
		crc := uint32(i)
		for j := 0; j < 8; j++ {
			if crc&1 == 1 {
				crc = (crc >> 1) ^ poly
			} else {
				crc >>= 1
			}
		}
		t[i] = crc
	}
	return t
}

// Checksum 计算data的CRC32(ISO 3309 / ITU-T V.42)
func Checksum(data []byte) uint32 {
	return Update(0, data)
}

// Update 在已有校验值crc的基础上继续累加data
func Update(crc uint32, data []byte) uint32 {
	crc = ^crc
	for _, b := range data {
		crc = ieeeTable[byte(crc)^b] ^ (crc >> 8)
	}
	return ^crc
}
