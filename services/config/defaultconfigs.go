package config

// -----------------------------------------------------------------------------
// Embedded board profiles
//
// Dotenv syntax, same keys as the process environment. A profile must set
// every key; files and the environment only override.
// -----------------------------------------------------------------------------

const DefaultProfile = "rpi-16x2"

const cfgRPi16x2 = `
# 12 V lead-acid pack, 16x2 HD44780 on a PCF8574 backpack
BATTMON_SHUNT_OHMS=0.1
BATTMON_VOLTAGE_HEALTHY=11.5
BATTMON_VOLTAGE_MODERATE=10.5
BATTMON_MAX_VOLTAGE=12.6
BATTMON_MIN_VOLTAGE=9.0
BATTMON_PAGE_DELAY=5s
BATTMON_LCD_COLS=16
BATTMON_LCD_ROWS=2
BATTMON_LCD_ADDR=0x27
BATTMON_INA219_ADDR=0x40
BATTMON_AHT_ADDR=0x38
BATTMON_I2C_BUS=1
`

const cfgRPi20x4 = `
BATTMON_SHUNT_OHMS=0.1
BATTMON_VOLTAGE_HEALTHY=11.5
BATTMON_VOLTAGE_MODERATE=10.5
BATTMON_MAX_VOLTAGE=12.6
BATTMON_MIN_VOLTAGE=9.0
BATTMON_PAGE_DELAY=5s
BATTMON_LCD_COLS=20
BATTMON_LCD_ROWS=4
BATTMON_LCD_ADDR=0x27
BATTMON_INA219_ADDR=0x40
BATTMON_AHT_ADDR=0x38
BATTMON_I2C_BUS=1
`

var embeddedProfiles = map[string]string{
	"rpi-16x2": cfgRPi16x2,
	"rpi-20x4": cfgRPi20x4,
}
