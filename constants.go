// constants.go - tunable thresholds for the texture cache state machine
//
// (c) 2024 - 2026 Zayn Otley
// https://github.com/IntuitionAmiga/IntuitionEngine
// License: GPLv3 or later

package texcache

// Decimation and thrash-resistance knobs (§6, §9 - "expose all thresholds
// as constants and cover them in property tests").
const (
	TextureKillAge           = 200 // frames an entry may sit unused before normal decimation
	TextureKillAgeLowMem     = 60  // same, but once low-memory mode is active
	TextureSecondKillAge     = 100 // frames an entry may sit unused in the secondary cache
	DecimationInterval       = 13  // decimation runs every Nth StartFrame
	RehashBackoffCap         = 2048
	FramesRegainTrust        = 256 // UNRELIABLE -> HASHING once num_frames exceeds this
	InvalidHintForceRehash   = 180
	InvalidHintSmallTexture  = 15
	SecondChanceMinInvalid   = 2
	SecondChanceMaxInvalid   = 128
	MaxSubareaYOffset        = 32
	ClutBufEntries           = 4096
	ClutBufBytes             = ClutBufEntries * 4
	InvalidationSlackBytes   = 512 * 512 * 4 // widest plausible texture span, see §4.9
	ClutHashSeed      uint32 = 0xC0108888
	QuickClutPrime    uint32 = 2246822519
)

// VRAMBit marks a guest address as living in the aliased VRAM mirror used
// for framebuffer cache keys (§3, §4.7).
const VRAMBit uint32 = 0x0400_0000

// AddrMask keeps guest addresses to the PSP's 28-bit addressable range.
const AddrMask uint32 = 0x0FFF_FFFF
