package fs

import (
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/hanwen/go-fuse/v2/fuse/nodefs"
	"github.com/hanwen/go-fuse/v2/fuse/pathfs"
	log15 "gopkg.in/inconshreveable/log15.v2"

	"github.com/pyircfs/pyircfs/handler"
	"github.com/pyircfs/pyircfs/irc"
)

// queueDepthPause is the outbound-queue depth past which the write path
// pauses, giving the flood gate a chance to drain before accepting more.
const queueDepthPause = 30

// queuePause is how long a write pauses when the queue is backed up.
const queuePause = 2300 * time.Millisecond

// FileSystem is a pathfs.FileSystem backed by a session Handler: reading a
// file returns IRC history, writing one sends commands or messages.
type FileSystem struct {
	pathfs.FileSystem

	h   *handler.Handler
	log log15.Logger
}

// New constructs a FileSystem projecting h's session state.
func New(h *handler.Handler, log log15.Logger) *FileSystem {
	if log == nil {
		log = log15.New()
	}
	return &FileSystem{
		FileSystem: pathfs.NewDefaultFileSystem(),
		h:          h,
		log:        log.New("component", "fs"),
	}
}

func dirAttr() *fuse.Attr {
	now := time.Now()
	return &fuse.Attr{Mode: fuse.S_IFDIR | 0755, Nlink: 2, Mtime: toU64(now), Ctime: toU64(now), Atime: toU64(now)}
}

func toU64(t time.Time) uint64 {
	if t.IsZero() {
		return 0
	}
	return uint64(t.Unix())
}

// fileAttr builds a regular-file fuse.Attr for contents with the given
// mode, ctime (first event) and mtime/atime (last event, falling back to
// ctime when there is no history yet).
func fileAttr(contents []string, mode uint32, ctime, lastAt time.Time) *fuse.Attr {
	size := uint64(0)
	for _, line := range contents {
		size += uint64(len(line)) + 1
	}
	mtime := lastAt
	if mtime.IsZero() {
		mtime = ctime
	}
	return &fuse.Attr{
		Mode:  fuse.S_IFREG | mode,
		Size:  size,
		Nlink: 1,
		Ctime: toU64(ctime),
		Mtime: toU64(mtime),
		Atime: toU64(mtime),
	}
}

// renderContent joins formatted content lines the way every store-backed
// read does: "\n".join(lines) + "\n", or "" if there is no history yet.
func renderContent(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// GetAttr resolves path and reports its mode/size/time attributes.
func (fs *FileSystem) GetAttr(path string, context *fuse.Context) (*fuse.Attr, fuse.Status) {
	n := resolve(path)
	switch n.kind {
	case kindRoot, kindCommandsDir, kindInfoDir, kindNamesDir, kindNamesChannelDir:
		if n.kind == kindNamesChannelDir {
			if _, ok := fs.h.LookupChannel(n.target); !ok {
				return nil, fuse.ENOENT
			}
		}
		return dirAttr(), fuse.OK

	case kindConversation:
		s, ok := fs.h.Conversation(n.target)
		if !ok {
			return nil, fuse.ENOENT
		}
		return fileAttr(s.Content(), 0644, s.CreatedAt(), s.LastAt()), fuse.OK

	case kindCommand:
		s, ok := fs.h.StoreByName(n.target)
		if !ok {
			return nil, fuse.ENOENT
		}
		return fileAttr(s.Content(), 0644, s.CreatedAt(), s.LastAt()), fuse.OK

	case kindInfoStore:
		s, ok := fs.h.StoreByName(n.target)
		if !ok {
			return nil, fuse.ENOENT
		}
		return fileAttr(s.Content(), 0444, s.CreatedAt(), s.LastAt()), fuse.OK

	case kindInfoChannel:
		text, ok := fs.h.ChannelSnapshot(n.target)
		if !ok {
			return nil, fuse.ENOENT
		}
		st := fs.h.Status()
		return fileAttr(strings.Split(strings.TrimRight(text, "\n"), "\n"), 0444, st.Time, st.Time), fuse.OK

	case kindInfoStatus:
		text := fs.h.StatusSnapshot()
		st := fs.h.Status()
		return fileAttr(strings.Split(strings.TrimRight(text, "\n"), "\n"), 0444, st.Time, st.Time), fuse.OK

	case kindNamesMember:
		text, ok := fs.h.MemberSnapshot(n.channel, n.member)
		if !ok {
			return nil, fuse.ENOENT
		}
		now := time.Now()
		return fileAttr(strings.Split(strings.TrimRight(text, "\n"), "\n"), 0444, now, now), fuse.OK
	}
	return nil, fuse.ENOENT
}

// OpenDir lists a directory's entries, sorted.
func (fs *FileSystem) OpenDir(path string, context *fuse.Context) ([]fuse.DirEntry, fuse.Status) {
	n := resolve(path)
	var names []string

	switch n.kind {
	case kindRoot:
		names = append(names, fs.h.ConversationNames()...)
		names = append(names, "commands", "info", "names")

	case kindCommandsDir:
		names = fs.h.CommandVerbs()
		for i, v := range names {
			names[i] = strings.ToLower(v)
		}

	case kindInfoDir:
		names = fs.h.InfoStoreNames()
		names = append(names, "status")
		for _, ch := range fs.h.Channels() {
			names = append(names, ch.Target())
		}

	case kindNamesDir:
		for _, ch := range fs.h.Channels() {
			names = append(names, ch.Target())
		}

	case kindNamesChannelDir:
		members, ok := fs.h.MemberNames(n.target)
		if !ok {
			return nil, fuse.ENOENT
		}
		names = members

	default:
		return nil, fuse.ENOENT
	}

	sort.Strings(names)
	entries := make([]fuse.DirEntry, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		mode := uint32(fuse.S_IFREG)
		if n.kind == kindRoot && (name == "commands" || name == "info" || name == "names") {
			mode = fuse.S_IFDIR
		}
		if n.kind == kindNamesDir {
			mode = fuse.S_IFDIR
		}
		entries = append(entries, fuse.DirEntry{Name: name, Mode: mode})
	}
	return entries, fuse.OK
}

// Open returns a File for path. Every read/write goes through storeFile,
// which resolves and re-resolves the node on every call so the content
// always reflects the live store.
func (fs *FileSystem) Open(path string, flags uint32, context *fuse.Context) (nodefs.File, fuse.Status) {
	n := resolve(path)
	switch n.kind {
	case kindConversation, kindCommand:
		return &storeFile{File: nodefs.NewDefaultFile(), fs: fs, node: n}, fuse.OK
	case kindInfoStore, kindInfoChannel, kindInfoStatus, kindNamesMember:
		return &storeFile{File: nodefs.NewDefaultFile(), fs: fs, node: n, readOnly: true}, fuse.OK
	}
	return nil, fuse.ENOENT
}

// Create implements create(path): under "/" it demand-creates a privmsg
// store; under "/commands" it succeeds iff the verb is already known (a
// command store always pre-exists, so this just validates); elsewhere it
// refuses. Dot-files are refused everywhere.
func (fs *FileSystem) Create(path string, flags uint32, mode uint32, context *fuse.Context) (nodefs.File, fuse.Status) {
	n := resolve(path)
	base := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		base = path[i+1:]
	}
	if strings.HasPrefix(base, ".") {
		return nil, fuse.EACCES
	}

	switch n.kind {
	case kindConversation:
		fs.h.EnsureConversation(n.target)
		return &storeFile{File: nodefs.NewDefaultFile(), fs: fs, node: n}, fuse.OK

	case kindCommand:
		for _, v := range fs.h.CommandVerbs() {
			if strings.EqualFold(v, n.target) {
				return &storeFile{File: nodefs.NewDefaultFile(), fs: fs, node: n}, fuse.OK
			}
		}
		return nil, fuse.ENOENT
	}
	return nil, fuse.EPERM
}

// Mkdir implements mkdir(/names/<#chan>): demand-create the channel store
// and send JOIN.
func (fs *FileSystem) Mkdir(path string, mode uint32, context *fuse.Context) fuse.Status {
	n := resolve(path)
	if n.kind != kindNamesChannelDir {
		return fuse.EACCES
	}
	if err := fs.h.JoinChannel(n.target); err != nil {
		return errnoStatus(err)
	}
	return fuse.OK
}

// Unlink implements unlink(path): removes a privmsg/channel store (sending
// PART for a channel); refuses on info files; succeeds as a no-op on name
// files.
func (fs *FileSystem) Unlink(path string, context *fuse.Context) fuse.Status {
	n := resolve(path)
	switch n.kind {
	case kindConversation:
		if irc.IsChannel(n.target) {
			if fs.h.RemoveChannel(n.target) {
				return fuse.OK
			}
		} else if fs.h.RemoveConversation(n.target) {
			return fuse.OK
		}
		return fuse.ENOENT

	case kindInfoStore, kindInfoChannel, kindInfoStatus:
		return fuse.EACCES

	case kindNamesMember:
		return fuse.OK

	default:
		return fuse.EACCES
	}
}

// Rmdir handles rmdir(/names/<#chan>) the same as Unlink on the channel.
func (fs *FileSystem) Rmdir(path string, context *fuse.Context) fuse.Status {
	n := resolve(path)
	if n.kind != kindNamesChannelDir {
		return fuse.EACCES
	}
	if fs.h.RemoveChannel(n.target) {
		return fuse.OK
	}
	return fuse.ENOENT
}

// Rename implements rename(src, /commands/<verb>): issue command <verb>
// with basename(src) as its argument.
func (fs *FileSystem) Rename(oldPath, newPath string, context *fuse.Context) fuse.Status {
	dst := resolve(newPath)
	if dst.kind != kindCommand {
		return fuse.EACCES
	}
	src := resolve(oldPath)
	var arg string
	switch src.kind {
	case kindConversation:
		arg = src.target
	case kindCommand:
		arg = src.target
	default:
		return fuse.EACCES
	}
	if err := fs.h.SendCommand(strings.ToUpper(dst.target), []string{arg}); err != nil {
		return errnoStatus(err)
	}
	return fuse.OK
}

func errnoStatus(err error) fuse.Status {
	if err == handler.ErrNotConnected {
		return fuse.Status(syscall.ENOTCONN)
	}
	return fuse.ENOENT
}

// commandParams builds the params slice SendCommand passes on to the
// store(s) routed under verb. Every store except RawStore expects
// positional fields (a target, then free text); RawStore.Generate expects
// its params[0] to be the whole, unsplit line so it can derive its own
// verb/rest by splitting on the first space itself, the way the original
// RawES.generate_event does. verb here is the /commands/<verb> directory
// name (already the SendCommand verb), not the user's typed text.
func commandParams(verb, line string) []string {
	if strings.EqualFold(verb, "raw") {
		return []string{line}
	}
	return strings.Fields(line)
}
