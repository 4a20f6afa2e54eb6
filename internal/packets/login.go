package packets

import (
	"fmt"
	"net/netip"

	"github.com/ragnet/ragnet/internal/core/netbytes"
)

// LoginRequest opens an account session on the login server.
type LoginRequest struct {
	GameVersion uint32
	Username    string
	Password    string
	ClientType  uint8
}

func (LoginRequest) Header() uint16 { return 0x0064 }

func (p *LoginRequest) EncodeBody(w *netbytes.Writer) {
	w.Uint32(p.GameVersion)
	w.String(p.Username, 24)
	w.String(p.Password, 24)
	w.Uint8(p.ClientType)
}

// LoginKeepalive is the login connection's ping frame.
type LoginKeepalive struct {
	keepalive
	Username string
}

func (LoginKeepalive) Header() uint16 { return 0x0200 }

func (p *LoginKeepalive) EncodeBody(w *netbytes.Writer) {
	w.String(p.Username, 24)
}

// CharacterServerInformation is one selectable character server in the
// login response. Each entry is 160 bytes.
type CharacterServerInformation struct {
	Address    netip.Addr
	Port       uint16
	Name       string
	UserCount  uint16
	ServerType uint16
	DisplayNew uint16
}

const characterServerInformationSize = 160

func readAddr4(c *netbytes.Cursor) netip.Addr {
	b := c.Bytes(4)
	if b == nil {
		return netip.Addr{}
	}
	return netip.AddrFrom4([4]byte(b))
}

func readCharacterServerInformation(c *netbytes.Cursor) CharacterServerInformation {
	info := CharacterServerInformation{
		Address:    readAddr4(c),
		Port:       c.Uint16(),
		Name:       c.String(20),
		UserCount:  c.Uint16(),
		ServerType: c.Uint16(),
		DisplayNew: c.Uint16(),
	}
	c.Skip(128)
	return info
}

// AddrPort combines the entry's address and port for dialing.
func (i CharacterServerInformation) AddrPort() netip.AddrPort {
	return netip.AddrPortFrom(i.Address, i.Port)
}

// LoginSuccess carries the session credentials and the character server
// list. The trailing server entries repeat to the end of the frame.
type LoginSuccess struct {
	LoginID1         uint32
	AccountID        AccountID
	LoginID2         uint32
	IP               netip.Addr
	Name             string
	Sex              Sex
	AuthToken        []byte
	CharacterServers []CharacterServerInformation
}

func (LoginSuccess) Header() uint16 { return 0x0ac4 }

func (p *LoginSuccess) DecodeBody(c *netbytes.Cursor) {
	c.Skip(2)
	p.LoginID1 = c.Uint32()
	p.AccountID = AccountID(c.Uint32())
	p.LoginID2 = c.Uint32()
	p.IP = readAddr4(c)
	p.Name = c.String(24)
	c.Skip(2)
	p.Sex = readSex(c)
	if b := c.Bytes(17); b != nil {
		p.AuthToken = append([]byte(nil), b...)
	}
	for c.Err() == nil && c.Remaining() >= characterServerInformationSize {
		p.CharacterServers = append(p.CharacterServers, readCharacterServerInformation(c))
	}
	if c.Err() == nil && c.Remaining() != 0 {
		c.Fail(fmt.Errorf("packets: %d trailing bytes after character server list", c.Remaining()))
	}
}

// LoginFailedReason is the closed set of rejection codes in the older
// failure frame.
type LoginFailedReason uint8

const (
	LoginFailedServerClosed    LoginFailedReason = 1
	LoginFailedAlreadyLoggedIn LoginFailedReason = 2
	LoginFailedAlreadyOnline   LoginFailedReason = 8
)

// String renders a player-facing description of the rejection.
func (r LoginFailedReason) String() string {
	switch r {
	case LoginFailedServerClosed:
		return "server closed"
	case LoginFailedAlreadyLoggedIn:
		return "someone has already logged in with this id"
	case LoginFailedAlreadyOnline:
		return "already online"
	}
	return fmt.Sprintf("LoginFailedReason(%d)", uint8(r))
}

// LoginFailed is the older of the two login rejection frames.
type LoginFailed struct {
	Reason LoginFailedReason
}

func (LoginFailed) Header() uint16 { return 0x0081 }

func (p *LoginFailed) DecodeBody(c *netbytes.Cursor) {
	v := c.Uint8()
	switch LoginFailedReason(v) {
	case LoginFailedServerClosed, LoginFailedAlreadyLoggedIn, LoginFailedAlreadyOnline:
		p.Reason = LoginFailedReason(v)
	default:
		if c.Err() == nil {
			c.Fail(fmt.Errorf("%w: login failure reason %d", ErrInvalidEnum, v))
		}
	}
}

// LoginFailedReason2 is the closed set of rejection codes in the newer
// failure frame. Codes are sequential.
type LoginFailedReason2 uint8

const (
	LoginFailed2UnregisteredID LoginFailedReason2 = iota
	LoginFailed2IncorrectPassword
	LoginFailed2IDExpired
	LoginFailed2RejectedFromServer
	LoginFailed2BlockedByGMTeam
	LoginFailed2GameOutdated
	LoginFailed2LoginProhibitedUntil
	LoginFailed2ServerFull
	LoginFailed2CompanyAccountLimitReached
)

func (r LoginFailedReason2) String() string {
	switch r {
	case LoginFailed2UnregisteredID:
		return "unregistered id"
	case LoginFailed2IncorrectPassword:
		return "incorrect password"
	case LoginFailed2IDExpired:
		return "this id is expired"
	case LoginFailed2RejectedFromServer:
		return "rejected from server"
	case LoginFailed2BlockedByGMTeam:
		return "blocked by the GM team"
	case LoginFailed2GameOutdated:
		return "game outdated; please download the latest version"
	case LoginFailed2LoginProhibitedUntil:
		return "login prohibited"
	case LoginFailed2ServerFull:
		return "server full"
	case LoginFailed2CompanyAccountLimitReached:
		return "company account limit reached"
	}
	return fmt.Sprintf("LoginFailedReason2(%d)", uint8(r))
}

// LoginFailed2 is the newer login rejection frame.
type LoginFailed2 struct {
	Reason LoginFailedReason2
}

func (LoginFailed2) Header() uint16 { return 0x083e }

func (p *LoginFailed2) DecodeBody(c *netbytes.Cursor) {
	v := c.Uint8()
	if c.Err() == nil && v > uint8(LoginFailed2CompanyAccountLimitReached) {
		c.Fail(fmt.Errorf("%w: login failure reason %d", ErrInvalidEnum, v))
		return
	}
	p.Reason = LoginFailedReason2(v)
}

// LoginRegistry enumerates every frame valid on the login connection.
func LoginRegistry() *Registry {
	return NewRegistry([]Descriptor{
		describe[LoginSuccess]("LoginSuccess", BodyVariable),
		describe[LoginFailed]("LoginFailed", 1),
		describe[LoginFailed2]("LoginFailed2", 1),
	})
}
