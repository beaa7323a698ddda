package darwinax

// axHelperSource is the Swift helper compiled lazily on first use. It
// speaks a positional CLI — (command, args...) — and prints one "ok"
// line or JSON on stdout; errors go to stderr with a non-zero exit.
//
// The tree command walks the accessibility hierarchy using the batch
// attribute API so each element's attributes arrive in one call
// (settability and action names are read separately), emitting a
// depth-annotated pre-order JSON array. Each node carries its child
// index path from the application element, which is how actions
// re-identify elements later.
const axHelperSource = `
import AppKit
import ApplicationServices
import Foundation

let batchAttributes: [String] = [
    kAXRoleAttribute, kAXSubroleAttribute, kAXTitleAttribute,
    kAXDescriptionAttribute, kAXHelpAttribute, kAXIdentifierAttribute,
    kAXValueAttribute, kAXEnabledAttribute, kAXFocusedAttribute,
    kAXSelectedAttribute, kAXExpandedAttribute, kAXModalAttribute,
    kAXPositionAttribute, kAXSizeAttribute, kAXURLAttribute,
    kAXPlaceholderValueAttribute, kAXMinValueAttribute,
    kAXMaxValueAttribute, kAXChildrenAttribute,
] as [String]

func copyAttributes(_ element: AXUIElement) -> [String: AnyObject] {
    var values: CFArray?
    let status = AXUIElementCopyMultipleAttributeValues(
        element, batchAttributes as CFArray, AXCopyMultipleAttributeOptions(), &values)
    var out: [String: AnyObject] = [:]
    guard status == .success, let list = values as? [AnyObject] else { return out }
    for (i, name) in batchAttributes.enumerated() where i < list.count {
        out[name] = list[i]
    }
    return out
}

func str(_ v: AnyObject?) -> String {
    if let s = v as? String { return s }
    if let n = v as? NSNumber { return n.stringValue }
    if let u = v as? URL { return u.absoluteString }
    return ""
}

func boolVal(_ v: AnyObject?) -> Bool {
    (v as? NSNumber)?.boolValue ?? false
}

func point(_ v: AnyObject?) -> CGPoint? {
    guard let v = v, CFGetTypeID(v) == AXValueGetTypeID() else { return nil }
    var p = CGPoint.zero
    if AXValueGetValue(v as! AXValue, .cgPoint, &p) { return p }
    return nil
}

func size(_ v: AnyObject?) -> CGSize? {
    guard let v = v, CFGetTypeID(v) == AXValueGetTypeID() else { return nil }
    var s = CGSize.zero
    if AXValueGetValue(v as! AXValue, .cgSize, &s) { return s }
    return nil
}

func actionNames(_ element: AXUIElement) -> [String] {
    var names: CFArray?
    guard AXUIElementCopyActionNames(element, &names) == .success,
          let list = names as? [String] else { return [] }
    return list
}

func isSettable(_ element: AXUIElement, _ attr: String) -> Bool {
    var settable = DarwinBoolean(false)
    AXUIElementIsAttributeSettable(element, attr as CFString, &settable)
    return settable.boolValue
}

struct Walker {
    var maxDepth: Int
    var nodes: [[String: Any]] = []

    mutating func walk(_ element: AXUIElement, depth: Int, path: [Int]) {
        if maxDepth > 0 && depth >= maxDepth { return }
        let attrs = copyAttributes(element)

        var node: [String: Any] = [
            "d": depth,
            "path": path,
            "role": str(attrs[kAXRoleAttribute]),
            "subrole": str(attrs[kAXSubroleAttribute]),
            "title": str(attrs[kAXTitleAttribute]),
            "desc": str(attrs[kAXDescriptionAttribute]),
            "help": str(attrs[kAXHelpAttribute]),
            "id": str(attrs[kAXIdentifierAttribute]),
            "value": str(attrs[kAXValueAttribute]),
            "enabled": attrs[kAXEnabledAttribute] == nil ? true : boolVal(attrs[kAXEnabledAttribute]),
            "focused": boolVal(attrs[kAXFocusedAttribute]),
            "selected": boolVal(attrs[kAXSelectedAttribute]),
            "modal": boolVal(attrs[kAXModalAttribute]),
            "editable": isSettable(element, kAXValueAttribute),
            "actions": actionNames(element),
            "url": str(attrs[kAXURLAttribute]),
            "placeholder": str(attrs[kAXPlaceholderValueAttribute]),
        ]
        if let v = attrs[kAXExpandedAttribute] {
            node["hasExpanded"] = true
            node["expanded"] = boolVal(v)
        }
        if let p = point(attrs[kAXPositionAttribute]), let s = size(attrs[kAXSizeAttribute]) {
            node["x"] = Int(p.x); node["y"] = Int(p.y)
            node["w"] = Int(s.width); node["h"] = Int(s.height)
        }
        if let mn = attrs[kAXMinValueAttribute] as? NSNumber {
            node["min"] = mn.doubleValue
        }
        if let mx = attrs[kAXMaxValueAttribute] as? NSNumber {
            node["max"] = mx.doubleValue
        }
        if let now = (attrs[kAXValueAttribute] as? NSNumber) {
            node["now"] = now.doubleValue
        }
        nodes.append(node)

        guard let children = attrs[kAXChildrenAttribute] as? [AXUIElement] else { return }
        for (i, child) in children.enumerated() {
            walk(child, depth: depth + 1, path: path + [i])
        }
    }
}

func elementAtPath(_ app: AXUIElement, _ path: [Int]) -> AXUIElement? {
    var current = app
    for index in path {
        var children: AnyObject?
        guard AXUIElementCopyAttributeValue(current, kAXChildrenAttribute as CFString, &children) == .success,
              let list = children as? [AXUIElement], index < list.count else { return nil }
        current = list[index]
    }
    return current
}

func emitJSON(_ value: Any) {
    let data = try! JSONSerialization.data(withJSONObject: value)
    FileHandle.standardOutput.write(data)
    FileHandle.standardOutput.write("\n".data(using: .utf8)!)
}

func fail(_ message: String) -> Never {
    FileHandle.standardError.write((message + "\n").data(using: .utf8)!)
    exit(1)
}

let args = CommandLine.arguments
guard args.count >= 2 else { fail("usage: cup-ax <command> [args...]") }

switch args[1] {
case "ping":
    print("ok")

case "screen":
    guard let screen = NSScreen.main else { fail("no display") }
    emitJSON(["w": Int(screen.frame.width), "h": Int(screen.frame.height),
              "scale": Double(screen.backingScaleFactor)])

case "windows":
    var rows: [[String: Any]] = []
    for app in NSWorkspace.shared.runningApplications where app.activationPolicy == .regular {
        rows.append([
            "pid": app.processIdentifier,
            "name": app.localizedName ?? "",
            "bundleId": app.bundleIdentifier ?? "",
            "active": app.isActive,
        ])
    }
    emitJSON(rows)

case "tree":
    guard args.count >= 3, let pid = Int32(args[2]) else { fail("tree requires a pid") }
    let maxDepth = args.count > 3 ? (Int(args[3]) ?? 0) : 0
    if !AXIsProcessTrusted() { fail("accessibility permission denied") }
    let app = AXUIElementCreateApplication(pid)
    var walker = Walker(maxDepth: maxDepth)
    walker.walk(app, depth: 0, path: [])
    emitJSON(walker.nodes)

case "action":
    guard args.count >= 5, let pid = Int32(args[2]) else { fail("action requires pid, path, name") }
    let path = args[3].split(separator: ",").compactMap { Int($0) }
    let app = AXUIElementCreateApplication(pid)
    guard let target = elementAtPath(app, path) else { fail("element path no longer resolves") }
    let status = AXUIElementPerformAction(target, args[4] as CFString)
    if status != .success { fail("action failed: \(status.rawValue)") }
    print("ok")

case "setvalue":
    guard args.count >= 5, let pid = Int32(args[2]) else { fail("setvalue requires pid, path, value") }
    let path = args[3].split(separator: ",").compactMap { Int($0) }
    let app = AXUIElementCreateApplication(pid)
    guard let target = elementAtPath(app, path) else { fail("element path no longer resolves") }
    let status = AXUIElementSetAttributeValue(target, kAXValueAttribute as CFString, args[4] as CFString)
    if status != .success { fail("set value failed: \(status.rawValue)") }
    print("ok")

case "focus":
    guard args.count >= 4, let pid = Int32(args[2]) else { fail("focus requires pid, path") }
    let path = args[3].split(separator: ",").compactMap { Int($0) }
    let app = AXUIElementCreateApplication(pid)
    guard let target = elementAtPath(app, path) else { fail("element path no longer resolves") }
    AXUIElementSetAttributeValue(target, kAXFocusedAttribute as CFString, kCFBooleanTrue)
    print("ok")

case "click":
    guard args.count >= 4, let x = Double(args[2]), let y = Double(args[3]) else { fail("click requires x, y") }
    let button = args.count > 4 ? args[4] : "left"
    let count = args.count > 5 ? (Int(args[5]) ?? 1) : 1
    let pt = CGPoint(x: x, y: y)
    let (down, up, btn): (CGEventType, CGEventType, CGMouseButton) =
        button == "right" ? (.rightMouseDown, .rightMouseUp, .right) : (.leftMouseDown, .leftMouseUp, .left)
    for i in 1...count {
        let d = CGEvent(mouseEventSource: nil, mouseType: down, mouseCursorPosition: pt, mouseButton: btn)
        let u = CGEvent(mouseEventSource: nil, mouseType: up, mouseCursorPosition: pt, mouseButton: btn)
        d?.setIntegerValueField(.mouseEventClickState, value: Int64(i))
        u?.setIntegerValueField(.mouseEventClickState, value: Int64(i))
        d?.post(tap: .cghidEventTap)
        u?.post(tap: .cghidEventTap)
    }
    print("ok")

case "scroll":
    guard args.count >= 6, let x = Double(args[2]), let y = Double(args[3]),
          let dx = Int32(args[4]), let dy = Int32(args[5]) else { fail("scroll requires x, y, dx, dy") }
    let move = CGEvent(mouseEventSource: nil, mouseType: .mouseMoved,
                       mouseCursorPosition: CGPoint(x: x, y: y), mouseButton: .left)
    move?.post(tap: .cghidEventTap)
    let scroll = CGEvent(scrollWheelEvent2Source: nil, units: .line, wheelCount: 2,
                         wheel1: dy, wheel2: dx, wheel3: 0)
    scroll?.post(tap: .cghidEventTap)
    print("ok")

case "type":
    guard args.count >= 3 else { fail("type requires text") }
    for scalar in args[2].unicodeScalars {
        var ch = [UniChar(scalar.value & 0xFFFF)]
        let down = CGEvent(keyboardEventSource: nil, virtualKey: 0, keyDown: true)
        let up = CGEvent(keyboardEventSource: nil, virtualKey: 0, keyDown: false)
        down?.keyboardSetUnicodeString(stringLength: 1, unicodeString: &ch)
        up?.keyboardSetUnicodeString(stringLength: 1, unicodeString: &ch)
        down?.post(tap: .cghidEventTap)
        up?.post(tap: .cghidEventTap)
        usleep(8000)
    }
    print("ok")

case "keys":
    guard args.count >= 4 else { fail("keys requires flags and keycode") }
    let flags = CGEventFlags(rawValue: UInt64(args[2]) ?? 0)
    guard let code = UInt16(args[3]) else { fail("bad keycode") }
    let down = CGEvent(keyboardEventSource: nil, virtualKey: code, keyDown: true)
    let up = CGEvent(keyboardEventSource: nil, virtualKey: code, keyDown: false)
    down?.flags = flags
    up?.flags = flags
    down?.post(tap: .cghidEventTap)
    up?.post(tap: .cghidEventTap)
    print("ok")

default:
    fail("unknown command \(args[1])")
}
`
